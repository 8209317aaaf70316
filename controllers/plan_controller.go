package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/999NK/teste2nutria-sub000/models"
	"github.com/999NK/teste2nutria-sub000/services"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	Svc *services.PlanService
	AI  *services.AIService // nil when GEMINI_API_KEY is not configured
}

func NewPlanController(svc *services.PlanService, ai *services.AIService) *PlanController {
	return &PlanController{Svc: svc, AI: ai}
}

type PlanInput struct {
	Type        models.PlanType `json:"type" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Content     json.RawMessage `json:"content"`
	IsActive    bool            `json:"is_active"`

	TargetCalories int `json:"target_calories"`
	TargetProtein  int `json:"target_protein"`
	TargetCarbs    int `json:"target_carbs"`
	TargetFat      int `json:"target_fat"`
}

func (h *PlanController) Create(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var input PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.Svc.Create(c.Request.Context(), &models.Plan{
		UserID:         userID,
		Type:           input.Type,
		Name:           input.Name,
		Description:    input.Description,
		Content:        input.Content,
		TargetCalories: input.TargetCalories,
		TargetProtein:  input.TargetProtein,
		TargetCarbs:    input.TargetCarbs,
		TargetFat:      input.TargetFat,
	}, input.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

type GenerateInput struct {
	Type models.PlanType `json:"type" binding:"required"`
}

// Generate builds a plan through the AI service and stores it active.
func (h *PlanController) Generate(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI plan generation is not configured"})
		return
	}
	var input GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.FindUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	var plan *models.Plan
	switch input.Type {
	case models.PlanTypeNutrition:
		plan, err = h.AI.GenerateNutritionPlan(c.Request.Context(), user)
	case models.PlanTypeWorkout:
		plan, err = h.AI.GenerateWorkoutPlan(c.Request.Context(), user)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be nutrition or workout"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	saved, err := h.Svc.Create(c.Request.Context(), plan, true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *PlanController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	plans, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanController) ListActive(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	plans, err := h.Svc.ListActive(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanController) ListHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	plans, err := h.Svc.ListHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanController) Activate(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	planID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}
	plan, err := h.Svc.Activate(c.Request.Context(), uint(planID), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	planID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uint(planID), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
