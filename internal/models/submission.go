package models

import "time"

// Submission is one user's attempt at one problem. Rows are append-only:
// created once per successful upload+detect cycle, never mutated.
type Submission struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	ProblemID   string    `json:"problem_id"`
	ImageGCSURL string    `json:"image_gcs_url"`
	OCRText     string    `json:"ocr_text"`
	AIFeedback  string    `json:"ai_feedback"`
	SubmittedAt time.Time `json:"submitted_at"`
}
