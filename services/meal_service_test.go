package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/999NK/teste2nutria-sub000/models"

	"gorm.io/gorm"
)

func seedFood(t *testing.T, db *gorm.DB, userID *uint, name string, calories, protein, carbs, fat float64) *models.Food {
	t.Helper()
	food := &models.Food{
		UserID:   userID,
		Name:     name,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
	}
	if err := db.Create(food).Error; err != nil {
		t.Fatalf("failed to seed food: %v", err)
	}
	return food
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAddMeal_FreezesSnapshotsAndDerivesTotals(t *testing.T) {
	db := newTestDB(t)
	foods := NewFoodService(db)
	svc := NewMealService(db, foods)
	ctx := context.Background()
	const userID = 1

	// chicken: 165 kcal / 31 P / 0 C / 3.6 F per 100g
	chicken := seedFood(t, db, nil, "Chicken breast", 165, 31, 0, 3.6)
	// rice: 130 kcal / 2.7 P / 28 C / 0.3 F per 100g
	rice := seedFood(t, db, nil, "Cooked rice", 130, 2.7, 28, 0.3)

	meal, err := svc.AddMeal(ctx, userID, "Lunch", "lunch",
		time.Date(2024, 1, 1, 12, 30, 0, 0, time.Local),
		[]MealItemRequest{
			{FoodID: chicken.ID, QuantityG: 200},
			{FoodID: rice.ID, QuantityG: 150},
		})
	if err != nil {
		t.Fatalf("AddMeal error: %v", err)
	}

	if len(meal.Items) != 2 {
		t.Fatalf("item count = %d, want 2", len(meal.Items))
	}
	// 200g chicken: 330 kcal, 62 P; 150g rice: 195 kcal, 42 C
	if !almostEqual(meal.Items[0].Calories, 330) || !almostEqual(meal.Items[0].Protein, 62) {
		t.Errorf("chicken snapshot = {%v kcal, %v P}, want {330, 62}", meal.Items[0].Calories, meal.Items[0].Protein)
	}
	if !almostEqual(meal.TotalCalories, 525) {
		t.Errorf("TotalCalories = %v, want 525", meal.TotalCalories)
	}
	if !almostEqual(meal.TotalCarbs, 42) {
		t.Errorf("TotalCarbs = %v, want 42", meal.TotalCarbs)
	}
}

// Editing a food after the fact must not change meals already logged.
func TestMealSnapshots_SurviveFoodEdits(t *testing.T) {
	db := newTestDB(t)
	foods := NewFoodService(db)
	svc := NewMealService(db, foods)
	ctx := context.Background()
	const userID = 1

	uid := uint(userID)
	food := seedFood(t, db, &uid, "Homemade granola", 450, 10, 60, 20)

	meal, err := svc.AddMeal(ctx, userID, "Breakfast", "breakfast",
		time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local),
		[]MealItemRequest{{FoodID: food.ID, QuantityG: 100}})
	if err != nil {
		t.Fatalf("AddMeal error: %v", err)
	}

	if _, err := foods.Update(ctx, food.ID, userID, &models.Food{Name: "Homemade granola", Calories: 999}); err != nil {
		t.Fatalf("food update error: %v", err)
	}

	reloaded, err := svc.Get(ctx, userID, meal.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !almostEqual(reloaded.TotalCalories, 450) {
		t.Errorf("TotalCalories = %v after food edit, want unchanged 450", reloaded.TotalCalories)
	}
	if !almostEqual(reloaded.Items[0].Calories, 450) {
		t.Errorf("item snapshot = %v after food edit, want unchanged 450", reloaded.Items[0].Calories)
	}
}

func TestUpdateMeal_ReplacesItemsAndRecomputes(t *testing.T) {
	db := newTestDB(t)
	foods := NewFoodService(db)
	svc := NewMealService(db, foods)
	ctx := context.Background()
	const userID = 1

	apple := seedFood(t, db, nil, "Apple", 52, 0.3, 14, 0.2)
	banana := seedFood(t, db, nil, "Banana", 89, 1.1, 23, 0.3)

	meal, err := svc.AddMeal(ctx, userID, "Snack", "snack",
		time.Date(2024, 1, 1, 16, 0, 0, 0, time.Local),
		[]MealItemRequest{{FoodID: apple.ID, QuantityG: 100}})
	if err != nil {
		t.Fatalf("AddMeal error: %v", err)
	}

	updated, err := svc.UpdateMeal(ctx, userID, meal.ID, "Snack", "snack",
		time.Date(2024, 1, 1, 16, 30, 0, 0, time.Local),
		[]MealItemRequest{{FoodID: banana.ID, QuantityG: 200}})
	if err != nil {
		t.Fatalf("UpdateMeal error: %v", err)
	}

	if len(updated.Items) != 1 || updated.Items[0].FoodID != banana.ID {
		t.Fatalf("items not replaced: %+v", updated.Items)
	}
	if !almostEqual(updated.TotalCalories, 178) {
		t.Errorf("TotalCalories = %v, want 178", updated.TotalCalories)
	}

	// no orphaned line items
	var orphans int64
	if err := db.Model(&models.MealFood{}).Where("meal_id = ?", meal.ID).Count(&orphans).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if orphans != 1 {
		t.Errorf("line items after update = %d, want 1", orphans)
	}
}

func TestDeleteMeal_RemovesItems(t *testing.T) {
	db := newTestDB(t)
	foods := NewFoodService(db)
	svc := NewMealService(db, foods)
	ctx := context.Background()
	const userID = 1

	apple := seedFood(t, db, nil, "Apple", 52, 0.3, 14, 0.2)
	meal, err := svc.AddMeal(ctx, userID, "Snack", "snack",
		time.Date(2024, 1, 1, 16, 0, 0, 0, time.Local),
		[]MealItemRequest{{FoodID: apple.ID, QuantityG: 100}})
	if err != nil {
		t.Fatalf("AddMeal error: %v", err)
	}

	if err := svc.DeleteMeal(ctx, userID, meal.ID); err != nil {
		t.Fatalf("DeleteMeal error: %v", err)
	}
	if _, err := svc.Get(ctx, userID, meal.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted meal still readable: %v", err)
	}
}

func TestAddMeal_RejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	foods := NewFoodService(db)
	svc := NewMealService(db, foods)
	ctx := context.Background()
	const userID = 1

	apple := seedFood(t, db, nil, "Apple", 52, 0.3, 14, 0.2)
	otherUser := uint(2)
	private := seedFood(t, db, &otherUser, "Their secret sauce", 100, 1, 1, 10)

	ateAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

	if _, err := svc.AddMeal(ctx, userID, "X", "lunch", ateAt,
		[]MealItemRequest{{FoodID: apple.ID, QuantityG: 0}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero quantity: error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.AddMeal(ctx, userID, "X", "lunch", ateAt,
		[]MealItemRequest{{FoodID: private.ID, QuantityG: 100}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("another user's food: error = %v, want ErrNotFound", err)
	}
	if _, err := svc.AddMeal(ctx, userID, "X", "lunch", ateAt,
		[]MealItemRequest{{FoodID: 9999, QuantityG: 100}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing food: error = %v, want ErrNotFound", err)
	}
}
