package detect

import (
	"encoding/json"
	"strings"

	"livesolve-backend/internal/models"
)

// defaultLabel replaces a missing label field in a model response.
const defaultLabel = "math region"

// rawDetection is one entry of the model's structured output, with the box
// still in the model's convention: [ymin, xmin, ymax, xmax] on a 0-1000
// scale.
type rawDetection struct {
	Box   []float64 `json:"box_2d"`
	Label string    `json:"label"`
}

// LabeledBox is a detection after coordinate normalization.
type LabeledBox struct {
	Box   models.BoundingBox
	Label string
}

// parseResult tags whether the response document itself was unusable, so
// "model found nothing" and "model returned garbage" stay distinguishable
// internally even though both degrade to an empty list for the caller.
type parseResult struct {
	Raw       []rawDetection
	Boxes     []LabeledBox
	Malformed bool
}

// NormalizeBox converts a model-convention box [ymin, xmin, ymax, xmax]
// into [xmin, ymin, xmax, ymax]: a pure axis swap plus min/max
// reordering, no scaling. Anything that is not four numbers becomes the
// degenerate box.
func NormalizeBox(coords []float64) models.BoundingBox {
	if len(coords) != 4 {
		return models.BoundingBox{0, 0, 0, 0}
	}
	ymin, xmin, ymax, xmax := coords[0], coords[1], coords[2], coords[3]
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	return models.BoundingBox{xmin, ymin, xmax, ymax}
}

// parseDetections decodes one model response into labeled, normalized
// boxes. Malformed documents yield an empty, tagged result instead of an
// error: detection is best-effort and must never abort the submission flow.
func parseDetections(text string) parseResult {
	text = stripCodeFences(strings.TrimSpace(text))

	var raw []rawDetection
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return parseResult{Boxes: []LabeledBox{}, Malformed: true}
	}

	boxes := make([]LabeledBox, 0, len(raw))
	for _, det := range raw {
		label := det.Label
		if label == "" {
			label = defaultLabel
		}
		boxes = append(boxes, LabeledBox{
			Box:   NormalizeBox(det.Box),
			Label: label,
		})
	}
	return parseResult{Raw: raw, Boxes: boxes}
}

// stripCodeFences unwraps a ```json ... ``` fenced response.
func stripCodeFences(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	return strings.TrimSpace(s)
}
