package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"livesolve-backend/internal/errdefs"
	"livesolve-backend/internal/gcs"
	"livesolve-backend/internal/models"
)

type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType, filename, ownerID string) (gcs.Locator, error)
}

type TextExtractor interface {
	ExtractText(ctx context.Context, gcsURI string) (string, error)
}

type ErrorDetector interface {
	DetectErrors(ctx context.Context, image []byte, mimeType string) (*models.FeedbackResult, error)
}

type SubmissionStore interface {
	CreateSubmission(ctx context.Context, userID, problemID, imageGCSURL, ocrText, aiFeedback string) (*models.Submission, error)
	ListSubmissionsByUser(ctx context.Context, userID string) ([]models.Submission, error)
}

// SubmissionService sequences the external calls behind one submission:
// upload, detect, persist. It never interprets model output beyond passing
// it through, never retries, and stops at the first failure. An image that
// was uploaded before a later step failed is an acceptable orphan.
type SubmissionService struct {
	images    ImageStore
	ocr       TextExtractor
	detector  ErrorDetector
	store     SubmissionStore
	problemID string
	log       *zap.Logger
}

func NewSubmissionService(
	images ImageStore,
	ocr TextExtractor,
	detector ErrorDetector,
	store SubmissionStore,
	problemID string,
	log *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		images:    images,
		ocr:       ocr,
		detector:  detector,
		store:     store,
		problemID: problemID,
		log:       log,
	}
}

// SubmitSolution runs the full cycle and returns the persisted record plus
// the structured feedback.
func (s *SubmissionService) SubmitSolution(ctx context.Context, userID string, image []byte, contentType, filename string) (*models.SubmissionResponse, error) {
	locator, err := s.images.Upload(ctx, image, contentType, filename, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	feedback, err := s.detector.DetectErrors(ctx, image, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate AI feedback: %w", err)
	}

	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize AI feedback: %w", err)
	}

	sub, err := s.store.CreateSubmission(ctx, userID, s.problemID, locator.PublicURL, "", string(feedbackJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	s.log.Info("submission stored",
		zap.Int64("id", sub.ID),
		zap.String("user_id", userID),
		zap.Int("errors", len(feedback.Errors)))

	return &models.SubmissionResponse{
		ImageGCSURL:    sub.ImageGCSURL,
		OCRText:        sub.OCRText,
		AIFeedback:     sub.AIFeedback,
		AIFeedbackData: feedback,
	}, nil
}

// Analyze uploads and detects without touching the database.
func (s *SubmissionService) Analyze(ctx context.Context, userID string, image []byte, contentType, filename string) (*models.AnalyzeResponse, error) {
	locator, err := s.images.Upload(ctx, image, contentType, filename, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	feedback, err := s.detector.DetectErrors(ctx, image, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate AI feedback: %w", err)
	}

	return &models.AnalyzeResponse{
		ImageGCSURL:    locator.PublicURL,
		AIFeedbackData: feedback,
		Message:        "AI analysis completed successfully (no database storage)",
	}, nil
}

// UploadImage stores the image and returns its public URL.
func (s *SubmissionService) UploadImage(ctx context.Context, userID string, image []byte, contentType, filename string) (gcs.Locator, error) {
	locator, err := s.images.Upload(ctx, image, contentType, filename, userID)
	if err != nil {
		return gcs.Locator{}, fmt.Errorf("failed to upload image: %w", err)
	}
	return locator, nil
}

// ExtractText validates the locator shape, then delegates to the OCR
// adapter. The prefix check happens before any network call.
func (s *SubmissionService) ExtractText(ctx context.Context, gcsURI string) (string, error) {
	if !strings.HasPrefix(gcsURI, gcs.URIScheme) {
		return "", fmt.Errorf("image locator must start with %q: %w", gcs.URIScheme, errdefs.ErrValidation)
	}
	return s.ocr.ExtractText(ctx, gcsURI)
}

func (s *SubmissionService) History(ctx context.Context, userID string) ([]models.Submission, error) {
	subs, err := s.store.ListSubmissionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission history: %w", err)
	}
	return subs, nil
}
