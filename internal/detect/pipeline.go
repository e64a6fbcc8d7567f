package detect

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	"livesolve-backend/internal/models"
)

const (
	// maxRegions caps the dense enumeration stage.
	maxRegions = 30
	// maxErrors caps the error selection stage.
	maxErrors = 10

	// SummaryPlaceholder is the static summary attached to every result.
	SummaryPlaceholder = "Analyzed the handwritten solution for errors."

	defaultMIMEType = "image/png"
)

const regionPrompt = `Detect every handwritten mathematical symbol, expression and solution step in the image, with no more than 30 items. Do not judge correctness; enumerate all of them. Output a json list where each entry contains the 2D bounding box in "box_2d" and a short text label in "label".`

const errorPromptFormat = `The following math regions were detected in the image:
%s
Select the regions that contain a mathematical error, with no more than 10 items. Only pick boxes from the list above; never invent a new box and never output segmentation masks, only the listed axis-aligned boxes. Output a json list where each entry contains the chosen 2D bounding box in "box_2d", copied exactly from the list, and a short explanation of why that region is wrong in "label". If the solution contains no errors, output an empty json list.`

// Pipeline detects erroneous regions in a handwritten solution image with
// two sequential model calls over the same image: first enumerate every
// math region, then ask the model to judge which of those regions are
// wrong. The second stage may only pick from the first stage's boxes,
// which keeps it from hallucinating regions that are not on the page.
type Pipeline struct {
	gen Generator
	log *zap.Logger
}

func NewPipeline(gen Generator, log *zap.Logger) *Pipeline {
	return &Pipeline{
		gen: gen,
		log: log,
	}
}

// DetectErrors runs both stages and returns the normalized feedback.
// Model-call failures propagate to the caller; unusable model output
// degrades to an empty result instead.
func (p *Pipeline) DetectErrors(ctx context.Context, image []byte, mimeType string) (*models.FeedbackResult, error) {
	if mimeType == "" {
		mimeType = defaultMIMEType
	}
	result := models.NewFeedbackResult(SummaryPlaceholder)

	regions, err := p.enumerateRegions(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}
	if len(regions.Boxes) == 0 {
		// Nothing to ground error selection against; skip stage two.
		return result, nil
	}

	selected, err := p.selectErrors(ctx, image, mimeType, regions)
	if err != nil {
		return nil, err
	}

	result.Errors = selected
	return result, nil
}

func (p *Pipeline) enumerateRegions(ctx context.Context, image []byte, mimeType string) (parseResult, error) {
	txt, err := p.gen.GenerateContent(ctx,
		&genai.Blob{MIMEType: mimeType, Data: image},
		genai.Text(regionPrompt),
	)
	if err != nil {
		return parseResult{}, fmt.Errorf("region enumeration failed: %w", err)
	}

	regions := parseDetections(txt)
	if regions.Malformed {
		p.log.Warn("discarding malformed region enumeration response")
	}
	if len(regions.Boxes) > maxRegions {
		regions.Raw = regions.Raw[:maxRegions]
		regions.Boxes = regions.Boxes[:maxRegions]
	}
	return regions, nil
}

func (p *Pipeline) selectErrors(ctx context.Context, image []byte, mimeType string, regions parseResult) ([]models.ErrorDetection, error) {
	// The stage-one list, still in the model's own box convention, is the
	// allowed vocabulary for stage two.
	vocab, err := json.Marshal(regions.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize region list: %w", err)
	}

	txt, err := p.gen.GenerateContent(ctx,
		&genai.Blob{MIMEType: mimeType, Data: image},
		genai.Text(fmt.Sprintf(errorPromptFormat, vocab)),
	)
	if err != nil {
		return nil, fmt.Errorf("error selection failed: %w", err)
	}

	selected := parseDetections(txt)
	if selected.Malformed {
		p.log.Warn("discarding malformed error selection response")
	}

	known := make(map[models.BoundingBox]bool, len(regions.Boxes))
	for _, r := range regions.Boxes {
		known[r.Box] = true
	}

	errors := make([]models.ErrorDetection, 0, len(selected.Boxes))
	for _, det := range selected.Boxes {
		// Enforce the grounding constraint the prompt asks for: a box the
		// model invented outside the stage-one list is dropped.
		if !known[det.Box] {
			p.log.Warn("dropping error box outside the detected region set",
				zap.Any("box", det.Box), zap.String("label", det.Label))
			continue
		}
		errors = append(errors, models.ErrorDetection{
			Label: det.Label,
			Box:   det.Box,
		})
		if len(errors) == maxErrors {
			break
		}
	}
	return errors, nil
}
