package services

import (
	"context"
	"errors"
	"strings"

	"github.com/999NK/teste2nutria-sub000/models"

	"gorm.io/gorm"
)

type RecipeService struct {
	db    *gorm.DB
	foods *FoodService
}

func NewRecipeService(db *gorm.DB, foods *FoodService) *RecipeService {
	return &RecipeService{db: db, foods: foods}
}

type RecipeIngredientRequest struct {
	FoodID    uint    `json:"food_id"`
	QuantityG float64 `json:"quantity_g"`
}

func (s *RecipeService) Create(
	ctx context.Context,
	userID uint,
	name, description string,
	servings int,
	ingredients []RecipeIngredientRequest,
) (*models.Recipe, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}
	recipe := &models.Recipe{UserID: userID, Name: name, Description: description, Servings: servings}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := s.createIngredients(ctx, tx, recipe, userID, ingredients); err != nil {
			return err
		}
		return s.recomputeTotals(tx, recipe)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, recipe.ID)
}

func (s *RecipeService) Update(
	ctx context.Context,
	userID, recipeID uint,
	name, description string,
	servings int,
	ingredients []RecipeIngredientRequest,
) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, userID).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if strings.TrimSpace(name) != "" {
			recipe.Name = name
		}
		recipe.Description = description
		recipe.Servings = servings
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := s.createIngredients(ctx, tx, &recipe, userID, ingredients); err != nil {
			return err
		}
		return s.recomputeTotals(tx, &recipe)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, recipe.ID)
}

func (s *RecipeService) Get(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", recipeID, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) List(ctx context.Context, userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients").
		Where("user_id = ?", userID).
		Order("name").
		Find(&recipes).Error
	return recipes, err
}

func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uint) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, userID).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

func (s *RecipeService) createIngredients(ctx context.Context, tx *gorm.DB, recipe *models.Recipe, userID uint, ingredients []RecipeIngredientRequest) error {
	for _, in := range ingredients {
		if in.QuantityG <= 0 {
			return ErrInvalidInput
		}
		food, err := s.foods.Get(ctx, in.FoodID, userID)
		if err != nil {
			return err
		}
		calories, protein, carbs, fat := ComputeMacros(food, in.QuantityG)
		ri := &models.RecipeIngredient{
			RecipeID:  recipe.ID,
			FoodID:    food.ID,
			FoodName:  food.Name,
			QuantityG: in.QuantityG,
			Calories:  calories,
			Protein:   protein,
			Carbs:     carbs,
			Fat:       fat,
		}
		if err := tx.Create(ri).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *RecipeService) recomputeTotals(tx *gorm.DB, recipe *models.Recipe) error {
	var ingredients []models.RecipeIngredient
	if err := tx.Where("recipe_id = ?", recipe.ID).Find(&ingredients).Error; err != nil {
		return err
	}
	var calories, protein, carbs, fat float64
	for _, in := range ingredients {
		calories += in.Calories
		protein += in.Protein
		carbs += in.Carbs
		fat += in.Fat
	}
	return tx.Model(recipe).Updates(map[string]any{
		"total_calories": calories,
		"total_protein":  protein,
		"total_carbs":    carbs,
		"total_fat":      fat,
	}).Error
}
