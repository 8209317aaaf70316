package services

import (
	"context"
	"errors"
	"time"

	"github.com/999NK/teste2nutria-sub000/models"

	"gorm.io/gorm"
)

type MealService struct {
	db    *gorm.DB
	foods *FoodService
}

func NewMealService(db *gorm.DB, foods *FoodService) *MealService {
	return &MealService{db: db, foods: foods}
}

type MealItemRequest struct {
	FoodID    uint    `json:"food_id"`
	QuantityG float64 `json:"quantity_g"`
}

// AddMeal creates the meal with one frozen-snapshot line item per request
// entry and derives the meal totals from them.
func (s *MealService) AddMeal(
	ctx context.Context,
	userID uint,
	name, mealType string,
	ateAt time.Time,
	items []MealItemRequest,
) (*models.Meal, error) {
	meal := &models.Meal{UserID: userID, Name: name, MealType: mealType, AteAt: ateAt}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return err
		}
		if err := s.createItems(ctx, tx, meal, userID, items); err != nil {
			return err
		}
		return s.recomputeTotals(tx, meal)
	})
	if err != nil {
		return nil, err
	}

	reloaded, err := s.Get(ctx, userID, meal.ID)
	if err != nil {
		return nil, err
	}
	EmitProgress(userID, ateAt)
	return reloaded, nil
}

// UpdateMeal replaces the meal's line items wholesale and recomputes totals.
func (s *MealService) UpdateMeal(
	ctx context.Context,
	userID, mealID uint,
	name, mealType string,
	ateAt time.Time,
	items []MealItemRequest,
) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meal.Name = name
		meal.MealType = mealType
		meal.AteAt = ateAt
		if err := tx.Save(&meal).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		if err := s.createItems(ctx, tx, &meal, userID, items); err != nil {
			return err
		}
		return s.recomputeTotals(tx, &meal)
	})
	if err != nil {
		return nil, err
	}

	reloaded, err := s.Get(ctx, userID, meal.ID)
	if err != nil {
		return nil, err
	}
	EmitProgress(userID, ateAt)
	return reloaded, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uint) error {
	var meal models.Meal
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meal).Error
	})
	if err != nil {
		return err
	}
	EmitProgress(userID, meal.AteAt)
	return nil
}

func (s *MealService) Get(ctx context.Context, userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

func (s *MealService) ListMeals(ctx context.Context, userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListMealsByDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

// createItems freezes a macro snapshot per item so later food edits never
// change this meal.
func (s *MealService) createItems(ctx context.Context, tx *gorm.DB, meal *models.Meal, userID uint, items []MealItemRequest) error {
	for _, it := range items {
		if it.QuantityG <= 0 {
			return ErrInvalidInput
		}
		food, err := s.foods.Get(ctx, it.FoodID, userID)
		if err != nil {
			return err
		}
		calories, protein, carbs, fat := ComputeMacros(food, it.QuantityG)
		mf := &models.MealFood{
			MealID:    meal.ID,
			FoodID:    food.ID,
			FoodName:  food.Name,
			QuantityG: it.QuantityG,
			Calories:  calories,
			Protein:   protein,
			Carbs:     carbs,
			Fat:       fat,
		}
		if err := tx.Create(mf).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *MealService) recomputeTotals(tx *gorm.DB, meal *models.Meal) error {
	var items []models.MealFood
	if err := tx.Where("meal_id = ?", meal.ID).Find(&items).Error; err != nil {
		return err
	}
	var calories, protein, carbs, fat float64
	for _, it := range items {
		calories += it.Calories
		protein += it.Protein
		carbs += it.Carbs
		fat += it.Fat
	}
	return tx.Model(meal).Updates(map[string]any{
		"total_calories": calories,
		"total_protein":  protein,
		"total_carbs":    carbs,
		"total_fat":      fat,
	}).Error
}
