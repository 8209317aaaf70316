package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/999NK/teste2nutria-sub000/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Svc *services.MealService
}

func NewMealController(svc *services.MealService) *MealController {
	return &MealController{Svc: svc}
}

type MealInput struct {
	Name     string                     `json:"name"`
	MealType string                     `json:"meal_type"`
	AteAt    time.Time                  `json:"ate_at" binding:"required"`
	Items    []services.MealItemRequest `json:"items"`
}

func (h *MealController) Log(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var input MealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.Svc.AddMeal(c.Request.Context(), userID, input.Name, input.MealType, input.AteAt, input.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *MealController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// optional ?date= narrows the list to one nutritional day
	if date := c.Query("date"); date != "" {
		start, end, err := services.DayRange(date)
		if err != nil {
			respondError(c, err)
			return
		}
		meals, err := h.Svc.ListMealsByDateRange(c.Request.Context(), userID, start, end)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, meals)
		return
	}

	meals, err := h.Svc.ListMeals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *MealController) Get(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	meal, err := h.Svc.Get(c.Request.Context(), userID, uint(mealID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealController) Update(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	var input MealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.Svc.UpdateMeal(c.Request.Context(), userID, uint(mealID), input.Name, input.MealType, input.AteAt, input.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	if err := h.Svc.DeleteMeal(c.Request.Context(), userID, uint(mealID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
