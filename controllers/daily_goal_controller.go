package controllers

import (
	"net/http"

	"github.com/Ajmalajjuca/Bite-check/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Svc *services.DailyGoalService
}

func NewGoalController(svc *services.DailyGoalService) *GoalController {
	return &GoalController{Svc: svc}
}

func (h *GoalController) GetGoal(c *gin.Context) {
	auth := authFromCtx(c)
	if auth == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	goal, err := h.Svc.CalorieGoal(c.Request.Context(), auth.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"calories": goal})
}

func (h *GoalController) UpdateGoal(c *gin.Context) {
	auth := authFromCtx(c)
	if auth == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Calories int `json:"calories"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Svc.UpsertCalorieGoal(c.Request.Context(), auth.UserID, req.Calories)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}
