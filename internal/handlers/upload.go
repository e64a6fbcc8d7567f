package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"livesolve-backend/internal/models"
)

// UploadImage godoc
// @Summary     Upload an image without analysis
// @Description Stores the image under the caller's prefix and returns its public URL.
// @Tags        submission
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "Image"
// @Success     200 {object} models.UploadImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /submission/upload-image [post]
func (h *SubmissionHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, err := formFile(c)
	if err != nil {
		respondError(c, "invalid upload", err)
		return
	}

	locator, err := h.svc.UploadImage(c.Request.Context(), userID, file.Data, file.ContentType, file.Filename)
	if err != nil {
		h.log.Error("upload failed", zap.String("user_id", userID), zap.Error(err))
		respondError(c, "failed to upload image", err)
		return
	}

	c.JSON(http.StatusOK, models.UploadImageResponse{URL: locator.PublicURL})
}
