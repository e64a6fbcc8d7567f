package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"livesolve-backend/internal/middleware"
	"livesolve-backend/internal/models"
	"livesolve-backend/internal/services"
)

type SubmissionHandler struct {
	svc *services.SubmissionService
	log *zap.Logger
}

func NewSubmissionHandler(svc *services.SubmissionService, log *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		svc: svc,
		log: log,
	}
}

// SubmitSolution godoc
// @Summary     Submit a handwritten solution for feedback
// @Description Uploads the solution image, runs error-region detection and stores the submission.
// @Tags        submission
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "Solution image"
// @Success     201 {object} models.SubmissionResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /submission/submit/solution [post]
func (h *SubmissionHandler) SubmitSolution(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, err := formFile(c)
	if err != nil {
		respondError(c, "invalid upload", err)
		return
	}

	resp, err := h.svc.SubmitSolution(c.Request.Context(), userID, file.Data, file.ContentType, file.Filename)
	if err != nil {
		h.log.Error("submission failed", zap.String("user_id", userID), zap.Error(err))
		respondError(c, "failed to process submission", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Analyze godoc
// @Summary     Run error detection without storing a submission
// @Description Uploads the image and returns the AI feedback; nothing is written to the database.
// @Tags        submission
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "Solution image"
// @Success     200 {object} models.AnalyzeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /submission/analyze [post]
func (h *SubmissionHandler) Analyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, err := formFile(c)
	if err != nil {
		respondError(c, "invalid upload", err)
		return
	}

	resp, err := h.svc.Analyze(c.Request.Context(), userID, file.Data, file.ContentType, file.Filename)
	if err != nil {
		h.log.Error("analysis failed", zap.String("user_id", userID), zap.Error(err))
		respondError(c, "failed to analyze image", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary     List the caller's submissions
// @Tags        submission
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.HistoryResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /submission/history [get]
func (h *SubmissionHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	subs, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "failed to load history", err)
		return
	}

	c.JSON(http.StatusOK, models.HistoryResponse{Submissions: subs})
}

// Me godoc
// @Summary     Return the verified caller identity
// @Tags        user
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.UserResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /me [get]
func (h *SubmissionHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	email, _ := c.Get(middleware.UserEmailKey)
	emailStr, _ := email.(string)

	c.JSON(http.StatusOK, models.UserResponse{
		UID:   userID,
		Email: emailStr,
	})
}
