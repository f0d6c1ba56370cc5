package qr

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilay320/MCP-Session-Code/pkg/errors"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	err := Options{Level: "X", BoxSize: 10}.Validate()
	assert.EqualError(t, err, "Invalid error correction level. Use L, M, Q, or H")
	assert.Equal(t, ErrCodeInvalidLevel, errors.CodeOf(err))

	err = Options{Level: "m", BoxSize: 10}.Validate()
	assert.Equal(t, ErrCodeInvalidLevel, errors.CodeOf(err))

	err = Options{Level: "H", BoxSize: 0}.Validate()
	assert.EqualError(t, err, "box_size must be between 1 and 100")
	assert.Equal(t, ErrCodeInvalidBoxSize, errors.CodeOf(Options{Level: "H", BoxSize: 101}.Validate()))
}

func TestValidateImageBounds(t *testing.T) {
	err := Options{Level: "M", Border: 1000, BoxSize: 20}.Validate()
	assert.EqualError(t, err, "border must be at most 100")
	assert.Equal(t, ErrCodeInvalidBorder, errors.CodeOf(err))

	assert.Equal(t, ErrCodeInvalidBorder, errors.CodeOf(Options{Level: "M", Border: 1 << 40, BoxSize: 1}.Validate()))

	err = Options{Level: "M", Border: MaxBorder, BoxSize: MaxBoxSize}.Validate()
	assert.EqualError(t, err, "image would be 22100px wide, maximum is 10000px; lower box_size or border")
	assert.Equal(t, ErrCodeTooLarge, errors.CodeOf(err))

	assert.NoError(t, Options{Level: "M", Border: MaxBorder, BoxSize: 1}.Validate())
	assert.NoError(t, Options{Level: "M", Border: -5, BoxSize: MaxBoxSize}.Validate())
}

func TestEncodeRejectsOversizedSymbol(t *testing.T) {
	data := strings.Repeat("a", 2000)
	_, err := Encode(data, Options{Level: "L", Border: 4, BoxSize: MaxBoxSize})
	require.Error(t, err)
	assert.Equal(t, ErrCodeTooLarge, errors.CodeOf(err))

	out, err := Encode(data, Options{Level: "L", Border: 4, BoxSize: 1})
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), MaxImageSide)
}

func TestEncodeGeometry(t *testing.T) {
	modules, err := Bitmap("https://example.com", "M")
	require.NoError(t, err)
	require.NotEmpty(t, modules)

	for _, tt := range []struct {
		border, box, effectiveBorder int
	}{
		{4, 10, 4},
		{1, 3, 4},
		{6, 2, 6},
	} {
		data, err := Encode("https://example.com", Options{Level: "M", Border: tt.border, BoxSize: tt.box})
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)

		want := (len(modules) + 2*tt.effectiveBorder) * tt.box
		assert.Equal(t, want, img.Bounds().Dx())
		assert.Equal(t, want, img.Bounds().Dy())

		// quiet zone is white, the finder pattern corner is dark
		assert.Equal(t, color.GrayModel.Convert(color.White), color.GrayModel.Convert(img.At(0, 0)))
		corner := tt.effectiveBorder * tt.box
		assert.Equal(t, color.GrayModel.Convert(color.Black), color.GrayModel.Convert(img.At(corner, corner)))
	}
}

func TestEncodeTooLong(t *testing.T) {
	_, err := Encode(strings.Repeat("x", 8000), Options{Level: "H", Border: 4, BoxSize: 1})
	require.Error(t, err)
	assert.Equal(t, ErrCodeEncode, errors.CodeOf(err))
}

func TestGenerate(t *testing.T) {
	out, err := Generate("hello", DefaultOptions())
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "QR code generated successfully for: 'hello'", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "Base64 PNG: data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(lines[1], "Base64 PNG: data:image/png;base64,"))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "short", Summary("short"))
	exact := strings.Repeat("a", 50)
	assert.Equal(t, exact, Summary(exact))
	assert.Equal(t, exact+"...", Summary(exact+"b"))
	assert.Equal(t, strings.Repeat("é", 50)+"...", Summary(strings.Repeat("é", 60)))
}
