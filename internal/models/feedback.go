package models

// BoundingBox is an axis-aligned rectangle in the model's 0-1000 coordinate
// space, always stored as [xmin, ymin, xmax, ymax].
type BoundingBox [4]float64

// ErrorDetection is one flagged region with a human-readable explanation.
type ErrorDetection struct {
	Label string      `json:"label"`
	Box   BoundingBox `json:"box_2d"`
}

// FeedbackResult is the structured outcome of the detection pipeline.
// Errors is always a list; no detected errors means an empty list.
type FeedbackResult struct {
	SummaryText string           `json:"summary_text"`
	Errors      []ErrorDetection `json:"errors"`
}

func NewFeedbackResult(summary string) *FeedbackResult {
	return &FeedbackResult{
		SummaryText: summary,
		Errors:      make([]ErrorDetection, 0),
	}
}
