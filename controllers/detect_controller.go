package controllers

import (
	"errors"
	"net/http"

	"github.com/Ajmalajjuca/Bite-check/services"
	"github.com/Ajmalajjuca/Bite-check/utils"

	"github.com/gin-gonic/gin"
)

type DetectController struct {
	Svc *services.DetectionService
}

func NewDetectController(svc *services.DetectionService) *DetectController {
	return &DetectController{Svc: svc}
}

// POST /detect  { "image_base64": "..." }
func (h *DetectController) Detect(c *gin.Context) {
	var input ImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	img, err := utils.ParseImageData(input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Svc.Detect(c.Request.Context(), authFromCtx(c), img)
	if errors.Is(err, services.ErrAnalysisAbandoned) {
		// client is gone; nothing to write to
		c.Abort()
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
