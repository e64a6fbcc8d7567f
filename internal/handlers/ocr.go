package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"livesolve-backend/internal/errdefs"
	"livesolve-backend/internal/models"
)

// ExtractText godoc
// @Summary     Extract text from a stored image
// @Description Runs OCR on an image previously uploaded to storage. The locator must be a gs:// URI.
// @Tags        submission
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.OCRRequest true "Image locator"
// @Success     200 {object} models.OCRResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /submission/ocr [post]
func (h *SubmissionHandler) ExtractText(c *gin.Context) {
	var req models.OCRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "invalid request body", fmt.Errorf("%s: %w", err.Error(), errdefs.ErrValidation))
		return
	}

	text, err := h.svc.ExtractText(c.Request.Context(), req.ImageGCSURL)
	if err != nil {
		respondError(c, "failed to extract text", err)
		return
	}

	c.JSON(http.StatusOK, models.OCRResponse{OCRText: text})
}
