package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal is one eating event. AteAt drives nutritional-day bucketing
// (a day runs 05:00–04:59:59, so AteAt is compared against that window,
// not against the calendar date).
type Meal struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	Name     string    `json:"name"`
	MealType string    `json:"meal_type"` // "breakfast"|"lunch"|"dinner"|"snack"
	AteAt    time.Time `gorm:"index;not null" json:"ate_at"`

	// Derived from Items; recomputed whenever line items change.
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`

	Items []MealFood `json:"items"`
}

// MealFood is a quantity of a Food attached to a Meal. The macro fields are
// a frozen snapshot computed at entry time, so later edits to the Food never
// alter historical meals.
type MealFood struct {
	gorm.Model
	MealID    uint    `gorm:"index;not null" json:"meal_id"`
	FoodID    uint    `gorm:"not null" json:"food_id"`
	FoodName  string  `json:"food_name"`
	QuantityG float64 `json:"quantity_g"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
