package models

type SubmissionResponse struct {
	ImageGCSURL    string          `json:"image_gcs_url"`
	OCRText        string          `json:"ocr_text"`
	AIFeedback     string          `json:"ai_feedback"`
	AIFeedbackData *FeedbackResult `json:"ai_feedback_data"`
}

type AnalyzeResponse struct {
	ImageGCSURL    string          `json:"image_gcs_url"`
	AIFeedbackData *FeedbackResult `json:"ai_feedback_data"`
	Message        string          `json:"message"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

type OCRResponse struct {
	OCRText string `json:"ocr_text"`
}

type HistoryResponse struct {
	Submissions []Submission `json:"submissions"`
}

type UserResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
