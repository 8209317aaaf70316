package services

import (
	"context"
	"errors"
	"strings"

	"github.com/999NK/teste2nutria-sub000/models"

	"gorm.io/gorm"
)

// FoodService manages the food catalog: global entries visible to everyone
// plus user-owned custom entries. Nutrients are stored per 100g.
type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// List returns global foods plus the user's own custom foods.
func (s *FoodService) List(ctx context.Context, userID uint) ([]models.Food, error) {
	var foods []models.Food
	err := s.db.WithContext(ctx).
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("name").
		Find(&foods).Error
	return foods, err
}

func (s *FoodService) Search(ctx context.Context, userID uint, query string) ([]models.Food, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return s.List(ctx, userID)
	}
	var foods []models.Food
	err := s.db.WithContext(ctx).
		Where("(user_id IS NULL OR user_id = ?) AND LOWER(name) LIKE LOWER(?)", userID, "%"+q+"%").
		Order("name").
		Find(&foods).Error
	return foods, err
}

// Get returns a food visible to the user (global or owned).
func (s *FoodService) Get(ctx context.Context, foodID, userID uint) (*models.Food, error) {
	var food models.Food
	err := s.db.WithContext(ctx).
		Where("id = ? AND (user_id IS NULL OR user_id = ?)", foodID, userID).
		First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &food, nil
}

// Create adds a user-owned custom food.
func (s *FoodService) Create(ctx context.Context, userID uint, food *models.Food) (*models.Food, error) {
	if strings.TrimSpace(food.Name) == "" {
		return nil, ErrInvalidInput
	}
	food.UserID = &userID
	if err := s.db.WithContext(ctx).Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// Update edits a user-owned food. Global entries and other users' foods are
// not editable; historical meal snapshots are unaffected either way.
func (s *FoodService) Update(ctx context.Context, foodID, userID uint, in *models.Food) (*models.Food, error) {
	var food models.Food
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", foodID, userID).
		First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(in.Name) != "" {
		food.Name = in.Name
	}
	food.Calories = in.Calories
	food.Protein = in.Protein
	food.Carbs = in.Carbs
	food.Fat = in.Fat
	food.Fiber = in.Fiber
	food.Sugar = in.Sugar
	food.Sodium = in.Sodium

	if err := s.db.WithContext(ctx).Save(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) Delete(ctx context.Context, foodID, userID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", foodID, userID).
		Delete(&models.Food{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ComputeMacros scales a food's per-100g nutrients to the given quantity.
// The result is frozen into MealFood/RecipeIngredient rows at entry time.
func ComputeMacros(food *models.Food, quantityG float64) (calories, protein, carbs, fat float64) {
	factor := quantityG / 100.0
	return food.Calories * factor, food.Protein * factor, food.Carbs * factor, food.Fat * factor
}
