package controllers

import (
	"net/http"

	"github.com/Ajmalajjuca/Bite-check/services"
	"github.com/Ajmalajjuca/Bite-check/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{Svc: svc}
}

func (h *UserController) GetProfile(c *gin.Context) {
	profile, err := h.Svc.GetProfile(c.Request.Context(), authFromCtx(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserController) UpdateProfile(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.Svc.UpdateProfile(c.Request.Context(), authFromCtx(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type ImageInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

func (h *UserController) UpdateProfileImage(c *gin.Context) {
	var input ImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	img, err := utils.ParseImageData(input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.Svc.UpdateProfileImage(c.Request.Context(), authFromCtx(c), img)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
