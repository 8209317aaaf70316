package controllers

import (
	"net/http"

	"github.com/999NK/teste2nutria-sub000/services"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Svc *services.AggregationService
}

func NewProgressController(svc *services.AggregationService) *ProgressController {
	return &ProgressController{Svc: svc}
}

// GetDaily serves GET /api/nutrition/daily?date=YYYY-MM-DD.
func (h *ProgressController) GetDaily(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	totals, err := h.Svc.DailyTotals(c.Request.Context(), userID, dateQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *ProgressController) GetHourly(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	buckets, err := h.Svc.HourlyBreakdown(c.Request.Context(), userID, dateQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func (h *ProgressController) GetWeekly(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	days, err := h.Svc.WeeklyTotals(c.Request.Context(), userID, dateQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

func (h *ProgressController) GetMonthly(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	weeks, err := h.Svc.MonthlyTotals(c.Request.Context(), userID, dateQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeks)
}
