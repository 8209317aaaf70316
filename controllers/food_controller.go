package controllers

import (
	"net/http"
	"strconv"

	"github.com/999NK/teste2nutria-sub000/models"
	"github.com/999NK/teste2nutria-sub000/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Svc *services.FoodService
}

func NewFoodController(svc *services.FoodService) *FoodController {
	return &FoodController{Svc: svc}
}

type FoodInput struct {
	Name     string  `json:"name" binding:"required"`
	Calories float64 `json:"calories" binding:"min=0"`
	Protein  float64 `json:"protein" binding:"min=0"`
	Carbs    float64 `json:"carbs" binding:"min=0"`
	Fat      float64 `json:"fat" binding:"min=0"`
	Fiber    float64 `json:"fiber" binding:"min=0"`
	Sugar    float64 `json:"sugar" binding:"min=0"`
	Sodium   float64 `json:"sodium" binding:"min=0"`
}

func (h *FoodController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	foods, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func (h *FoodController) Search(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	foods, err := h.Svc.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func (h *FoodController) Create(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var input FoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := h.Svc.Create(c.Request.Context(), userID, &models.Food{
		Name:     input.Name,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Fiber:    input.Fiber,
		Sugar:    input.Sugar,
		Sodium:   input.Sodium,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (h *FoodController) Update(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	foodID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}
	var input FoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := h.Svc.Update(c.Request.Context(), uint(foodID), userID, &models.Food{
		Name:     input.Name,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Fiber:    input.Fiber,
		Sugar:    input.Sugar,
		Sodium:   input.Sodium,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *FoodController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	foodID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uint(foodID), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
