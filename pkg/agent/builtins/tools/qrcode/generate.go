// ABOUTME: generate_qr_code tool wrapping pkg/qr
// ABOUTME: Option errors render as "Error: ..."; encoding failures as "Error generating QR code: ..."

package qrcode

import (
	stderrors "errors"
	"fmt"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	atools "github.com/nilay320/MCP-Session-Code/pkg/agent/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/errors"
	"github.com/nilay320/MCP-Session-Code/pkg/qr"
	sdomain "github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
	"github.com/nilay320/MCP-Session-Code/pkg/schema/generator"
)

// ToolName is the MCP name of the QR tool.
const ToolName = "generate_qr_code"

const toolVersion = "1.0.0"

// GenerateParams defines parameters for the QR tool. Options are checked by
// qr.Options.Validate so the schema carries no bounds of its own.
type GenerateParams struct {
	Data            string `json:"data" description:"The text or URL to encode in the QR code"`
	ErrorCorrection string `json:"error_correction,omitempty" default:"M" description:"Error correction level: \"L\" (~7%), \"M\" (~15%), \"Q\" (~25%) or \"H\" (~30%)"`
	Border          int    `json:"border,omitempty" default:"4" description:"Quiet zone width in modules (4-100)"`
	BoxSize         int    `json:"box_size,omitempty" default:"10" description:"Pixel size of each module (1-100)"`
}

var generateParamSchema = generator.MustFromStruct(GenerateParams{})

func init() {
	tools.MustRegisterTool(ToolName, GenerateQRCode(), tools.ToolMetadata{
		Metadata: builtins.Metadata{
			Name:     ToolName,
			Category: "utility",
			Tags:     []string{"qr", "image", "encoding"},
			Version:  toolVersion,
		},
		ResourceUsage: tools.ResourceInfo{
			Memory:      "medium",
			Network:     false,
			Concurrency: true,
		},
	})
}

// GenerateQRCode creates the QR code tool.
func GenerateQRCode() domain.Tool {
	fn := func(ctx *domain.ToolContext, params GenerateParams) (string, error) {
		opts := qr.Options{
			Level:   params.ErrorCorrection,
			Border:  params.Border,
			BoxSize: params.BoxSize,
		}
		if err := opts.Validate(); err != nil {
			return "Error: " + err.Error(), nil
		}

		out, err := qr.Generate(params.Data, opts)
		if err != nil {
			if ctx.Events != nil {
				ctx.Events.EmitError(err)
			}
			return "Error generating QR code: " + rootCause(err).Error(), nil
		}
		return out, nil
	}

	return atools.NewToolBuilder(ToolName, "Generate a QR code PNG for the given text or URL").
		WithFunction(fn).
		WithParameterSchema(generateParamSchema).
		WithOutputSchema(&sdomain.Schema{
			Type:        "string",
			Description: "Confirmation line followed by a base64 PNG data URI, or an error message",
		}).
		WithCategory("utility").
		WithTags([]string{"qr", "image", "encoding"}).
		WithVersion(toolVersion).
		WithUsageInstructions(`Encodes data as a QR code and returns two lines:

QR code generated successfully for: '<first 50 characters of data>'
Base64 PNG: data:image/png;base64,<image>

Higher error correction levels survive more damage but produce denser codes.
Borders below 4 modules are raised to 4 so the code stays scannable.
Images wider than 10000 pixels are refused; lower box_size for long data.`).
		WithExamples([]domain.ToolExample{
			{
				Name:        "URL",
				Description: "Encode a link with default settings",
				Input:       map[string]interface{}{"data": "https://example.com"},
				Output:      "QR code generated successfully for: 'https://example.com'\nBase64 PNG: data:image/png;base64,iVBORw0KGgo...",
			},
			{
				Name:        "Invalid level",
				Description: "Levels are case-sensitive",
				Input:       map[string]interface{}{"data": "hi", "error_correction": "x"},
				Output:      "Error: Invalid error correction level. Use L, M, Q, or H",
			},
		}).
		WithConstraints([]string{
			"error_correction must be one of L, M, Q, H",
			fmt.Sprintf("box_size must be between %d and %d", qr.MinBoxSize, qr.MaxBoxSize),
			fmt.Sprintf("border is raised to at least %d and may not exceed %d", qr.MinBorder, qr.MaxBorder),
			fmt.Sprintf("The image may not exceed %dpx per side", qr.MaxImageSide),
			"Capacity depends on the level; about 2900 bytes at L",
		}).
		WithBehavior(true, false, false, "fast").
		Build()
}

// rootCause strips the BaseError wrappers added while encoding.
func rootCause(err error) error {
	for {
		var be *errors.BaseError
		if !stderrors.As(err, &be) || be.Cause == nil {
			return err
		}
		err = be.Cause
	}
}
