package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Ajmalajjuca/Bite-check/services"
	"github.com/Ajmalajjuca/Bite-check/utils"

	"github.com/gin-gonic/gin"
)

type CalorieController struct {
	Svc *services.CalorieService
	Loc *time.Location
}

func NewCalorieController(svc *services.CalorieService, loc *time.Location) *CalorieController {
	if loc == nil {
		loc = time.Local
	}
	return &CalorieController{Svc: svc, Loc: loc}
}

type AddCaloriesInput struct {
	Calories int `json:"calories"`
}

// POST /calories  { "calories": 350 }
func (h *CalorieController) AddCalories(c *gin.Context) {
	var input AddCaloriesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.Svc.AddCalories(c.Request.Context(), authFromCtx(c), input.Calories)
	switch {
	case errors.Is(err, services.ErrNotSignedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Cannot add calories.", "code": "not_signed_in"})
		return
	case errors.Is(err, services.ErrNothingToAdd):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add calories.", "code": "nothing_to_add"})
		return
	case errors.Is(err, services.ErrTooManyCalories):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add calories.", "code": "too_many_calories"})
		return
	case err != nil:
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Added %d calories", input.Calories),
		"added":   input.Calories,
		"record":  rec,
	})
}

// GET /calories/today
func (h *CalorieController) GetToday(c *gin.Context) {
	out, err := h.Svc.Today(c.Request.Context(), authFromCtx(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /calories?date=YYYY-MM-DD
func (h *CalorieController) GetByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'date' query param"})
		return
	}

	rec, err := h.Svc.ByDate(c.Request.Context(), authFromCtx(c), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GET /calories/history?from=&to=&includeMissingDays=
// Defaults to the current month.
func (h *CalorieController) GetHistory(c *gin.Context) {
	now := time.Now().In(h.Loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.Loc)
	last := first.AddDate(0, 1, -1)

	from := c.DefaultQuery("from", first.Format(utils.DayLayout))
	to := c.DefaultQuery("to", last.Format(utils.DayLayout))
	includeMissing := c.DefaultQuery("includeMissingDays", "false") == "true"

	out, err := h.Svc.History(c.Request.Context(), authFromCtx(c), from, to, includeMissing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /calories/month?anchor=YYYY-MM-DD
func (h *CalorieController) GetMonth(c *gin.Context) {
	anchor := time.Now().In(h.Loc)
	if v := c.Query("anchor"); v != "" {
		t, err := utils.ParseDay(v, h.Loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor"})
			return
		}
		anchor = t
	}

	weeks, err := h.Svc.MonthWeeks(c.Request.Context(), authFromCtx(c), anchor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": weeks})
}
