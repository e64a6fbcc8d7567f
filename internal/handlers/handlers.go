package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"livesolve-backend/internal/errdefs"
	"livesolve-backend/internal/middleware"
	"livesolve-backend/internal/models"
)

// uploadedFile is one image read out of a multipart form.
type uploadedFile struct {
	Data        []byte
	ContentType string
	Filename    string
}

// formFile pulls the image out of the multipart form, accepting a few
// common field names.
func formFile(c *gin.Context) (*uploadedFile, error) {
	var fieldNames = []string{"file", "image", "photo"}

	for _, name := range fieldNames {
		header, err := c.FormFile(name)
		if err != nil {
			continue
		}
		src, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}

		return &uploadedFile{
			Data:        data,
			ContentType: header.Header.Get("Content-Type"),
			Filename:    header.Filename,
		}, nil
	}

	return nil, fmt.Errorf("no image file in form (expected one of %v): %w", fieldNames, errdefs.ErrValidation)
}

func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return "", false
	}
	return userID.(string), true
}

// respondError maps a service error onto the outward taxonomy: validation
// failures are the caller's fault (400), everything else is an upstream or
// server failure (500). The underlying message is carried verbatim.
func respondError(c *gin.Context, what string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, errdefs.ErrValidation) {
		status = http.StatusBadRequest
	}
	c.JSON(status, models.ErrorResponse{
		Error:   what,
		Message: err.Error(),
	})
}
