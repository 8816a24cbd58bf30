package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

type VoiceHandler struct {
	voiceService voice.VoiceService
	logger       *Logger.Logger
}

func NewVoiceHandler(voiceService voice.VoiceService, logger *Logger.Logger) *VoiceHandler {
	return &VoiceHandler{
		voiceService: voiceService,
		logger:       logger,
	}
}

// Transcribe handles speech-to-text for one recording
// @Summary Transcribe a recording
// @Description Transcribe base64 audio and detect its language
// @Tags Voice
// @Accept json
// @Produce json
// @Param request body voice.TranscribeRequest true "Base64 audio and its MIME type"
// @Success 200 {object} voice.Transcript "Transcript"
// @Failure 400 {object} ErrorResponse "Invalid audio"
// @Failure 500 {object} ErrorResponse "Transcription failed"
// @Router /voice/transcribe [post]
func (h *VoiceHandler) Transcribe(c *gin.Context) {
	var req voice.TranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data", Details: err.Error()})
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioData)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid audio data", Details: "audioData must be base64"})
		return
	}

	tr, err := h.voiceService.Transcribe(c.Request.Context(), audio, req.MimeType)
	if err != nil {
		switch {
		case errors.Is(err, voice.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid audio data", Details: err.Error()})
		default:
			h.logger.Errorf("transcription error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Transcription failed", Details: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, tr)
}

// ExtractJob handles job field extraction
// @Summary Extract job fields
// @Description Extract a structured job request from a transcript
// @Tags Voice
// @Accept json
// @Produce json
// @Param request body voice.ExtractRequest true "Transcript"
// @Success 200 {object} voice.JobResult "Extracted job, tagged with its source"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 422 {object} ErrorResponse "Extraction failed"
// @Router /voice/extract-job [post]
func (h *VoiceHandler) ExtractJob(c *gin.Context) {
	var req voice.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data", Details: err.Error()})
		return
	}

	res, err := h.voiceService.ExtractJob(c.Request.Context(), req.Transcript())
	if err != nil {
		h.extractionError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ExtractUser handles user field extraction
// @Summary Extract user fields
// @Description Extract account details from a transcript
// @Tags Voice
// @Accept json
// @Produce json
// @Param request body voice.ExtractRequest true "Transcript"
// @Success 200 {object} voice.UserResult "Extracted user, tagged with its source"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 422 {object} ErrorResponse "Extraction failed"
// @Router /voice/extract-user [post]
func (h *VoiceHandler) ExtractUser(c *gin.Context) {
	var req voice.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data", Details: err.Error()})
		return
	}

	res, err := h.voiceService.ExtractUser(c.Request.Context(), req.Transcript())
	if err != nil {
		h.extractionError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Languages lists the supported spoken languages
// @Summary Supported languages
// @Tags Voice
// @Produce json
// @Success 200 {object} LanguagesResponse "Language codes"
// @Router /voice/languages [get]
func (h *VoiceHandler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, LanguagesResponse{Languages: h.voiceService.Languages()})
}

func (h *VoiceHandler) extractionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, voice.ErrUnsupportedLanguage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported language", Details: err.Error()})
	case errors.Is(err, voice.ErrValidation), errors.Is(err, voice.ErrExtractionFailed):
		h.logger.Warnf("extraction error: %v", err)
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Extraction failed", Details: err.Error()})
	default:
		h.logger.Errorf("extraction error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func (h *VoiceHandler) RegisterVoiceRoutes(r *gin.RouterGroup) {
	v := r.Group("/voice")
	{
		v.POST("/transcribe", h.Transcribe)
		v.POST("/extract-job", h.ExtractJob)
		v.POST("/extract-user", h.ExtractUser)
		v.GET("/languages", h.Languages)
	}
}
