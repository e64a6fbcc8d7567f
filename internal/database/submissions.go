package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"livesolve-backend/internal/models"
)

type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

// CreateSubmission inserts one submission row and returns it with the
// server-assigned id and timestamp. Submissions are append-only; there are
// no update or delete operations.
func (c *Client) CreateSubmission(ctx context.Context, userID, problemID, imageGCSURL, ocrText, aiFeedback string) (*models.Submission, error) {
	var sub models.Submission
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO submissions (user_id, problem_id, image_gcs_url, ocr_text, ai_feedback)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, problem_id, image_gcs_url, ocr_text, ai_feedback, submitted_at
	`, userID, problemID, imageGCSURL, ocrText, aiFeedback).Scan(
		&sub.ID, &sub.UserID, &sub.ProblemID,
		&sub.ImageGCSURL, &sub.OCRText, &sub.AIFeedback, &sub.SubmittedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return &sub, nil
}

func (c *Client) ListSubmissionsByUser(ctx context.Context, userID string) ([]models.Submission, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, user_id, problem_id, image_gcs_url, ocr_text, ai_feedback, submitted_at
		FROM submissions
		WHERE user_id = $1
		ORDER BY submitted_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]models.Submission, 0)
	for rows.Next() {
		var sub models.Submission
		err := rows.Scan(
			&sub.ID, &sub.UserID, &sub.ProblemID,
			&sub.ImageGCSURL, &sub.OCRText, &sub.AIFeedback, &sub.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	return submissions, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}
