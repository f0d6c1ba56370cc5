// Package qr renders QR codes as PNG images with a configurable quiet zone
// and module size. Symbol encoding is delegated to github.com/skip2/go-qrcode.
package qr

// ABOUTME: QR code PNG rendering on top of go-qrcode's module bitmap
// ABOUTME: Validates error correction level and sizes before any encoding work

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"unicode/utf8"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/nilay320/MCP-Session-Code/pkg/errors"
)

// Limits and defaults.
const (
	MinBorder      = 4
	MaxBorder      = 100
	MinBoxSize     = 1
	MaxBoxSize     = 100
	DefaultLevel   = "M"
	DefaultBorder  = 4
	DefaultBoxSize = 10

	// MaxImageSide bounds the rendered PNG's width and height in pixels.
	MaxImageSide = 10000

	// minModules is the side of the smallest symbol (version 1).
	minModules = 21

	// summaryLimit is how much of the data the success message echoes.
	summaryLimit = 50
)

// Error codes.
const (
	ErrCodeInvalidLevel   = "QR_INVALID_LEVEL"
	ErrCodeInvalidBoxSize = "QR_INVALID_BOX_SIZE"
	ErrCodeInvalidBorder  = "QR_INVALID_BORDER"
	ErrCodeTooLarge       = "QR_IMAGE_TOO_LARGE"
	ErrCodeEncode         = "QR_ENCODE"
)

var levels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

// Options control rendering.
type Options struct {
	// Level is the error correction level: L, M, Q or H.
	Level string
	// Border is the quiet zone in modules; values below MinBorder are raised
	// and values above MaxBorder are rejected.
	Border int
	// BoxSize is the pixel size of one module.
	BoxSize int
}

// DefaultOptions returns level M, a 4-module border and 10px modules.
func DefaultOptions() Options {
	return Options{Level: DefaultLevel, Border: DefaultBorder, BoxSize: DefaultBoxSize}
}

// Validate checks the options without touching the data.
func (o Options) Validate() error {
	if _, ok := levels[o.Level]; !ok {
		return errors.NewErrorWithCode(ErrCodeInvalidLevel, "Invalid error correction level. Use L, M, Q, or H").
			WithContext("level", o.Level)
	}
	if o.BoxSize < MinBoxSize || o.BoxSize > MaxBoxSize {
		return errors.NewErrorWithCode(ErrCodeInvalidBoxSize,
			fmt.Sprintf("box_size must be between %d and %d", MinBoxSize, MaxBoxSize)).
			WithContext("box_size", o.BoxSize)
	}
	if o.Border > MaxBorder {
		return errors.NewErrorWithCode(ErrCodeInvalidBorder,
			fmt.Sprintf("border must be at most %d", MaxBorder)).
			WithContext("border", o.Border)
	}
	// Even the smallest symbol must fit; larger symbols are checked in Encode.
	if side := imageSide(minModules, o.border(), o.BoxSize); side > MaxImageSide {
		return tooLarge(side)
	}
	return nil
}

// imageSide is the rendered width in pixels. Callers keep border and box
// within their limits, so the product cannot overflow.
func imageSide(modules, border, box int) int {
	return (modules + 2*border) * box
}

func tooLarge(side int) error {
	return errors.NewErrorWithCode(ErrCodeTooLarge,
		fmt.Sprintf("image would be %dpx wide, maximum is %dpx; lower box_size or border", side, MaxImageSide)).
		WithContext("side", side)
}

func (o Options) border() int {
	if o.Border < MinBorder {
		return MinBorder
	}
	return o.Border
}

// Bitmap returns the symbol's modules without a quiet zone; true is dark.
func Bitmap(data, level string) ([][]bool, error) {
	rl, ok := levels[level]
	if !ok {
		return nil, errors.NewErrorWithCode(ErrCodeInvalidLevel, "Invalid error correction level. Use L, M, Q, or H")
	}
	code, err := qrcode.New(data, rl)
	if err != nil {
		return nil, errors.Wrap(err, "encode qr code").WithCode(ErrCodeEncode)
	}
	code.DisableBorder = true
	return code.Bitmap(), nil
}

// Encode renders data as a black-on-white PNG.
func Encode(data string, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	modules, err := Bitmap(data, opts.Level)
	if err != nil {
		return nil, err
	}

	if side := imageSide(len(modules), opts.border(), opts.BoxSize); side > MaxImageSide {
		return nil, tooLarge(side)
	}

	img := render(modules, opts.border(), opts.BoxSize)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png").WithCode(ErrCodeEncode)
	}
	return buf.Bytes(), nil
}

func render(modules [][]bool, border, box int) *image.Paletted {
	size := imageSide(len(modules), border, box)
	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, size, size), palette)

	for y, row := range modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0, y0 := (x+border)*box, (y+border)*box
			for dy := 0; dy < box; dy++ {
				for dx := 0; dx < box; dx++ {
					img.SetColorIndex(x0+dx, y0+dy, 1)
				}
			}
		}
	}
	return img
}

// DataURI returns an encoded PNG as a data:image/png;base64 URI.
func DataURI(encoded []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(encoded)
}

// Summary echoes at most the first 50 characters of data, marking
// truncation with "...".
func Summary(data string) string {
	if utf8.RuneCountInString(data) <= summaryLimit {
		return data
	}
	return string([]rune(data)[:summaryLimit]) + "..."
}

// Generate renders data and returns the report sent to clients:
//
//	QR code generated successfully for: '<data>'
//	Base64 PNG: data:image/png;base64,...
func Generate(data string, opts Options) (string, error) {
	img, err := Encode(data, opts)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "QR code generated successfully for: '%s'\n", Summary(data))
	b.WriteString("Base64 PNG: ")
	b.WriteString(DataURI(img))
	return b.String(), nil
}
