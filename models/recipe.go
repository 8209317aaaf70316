package models

import "gorm.io/gorm"

// Recipe is a named, user-owned collection of ingredient lines with derived
// totals, mirroring the Meal/MealFood snapshot scheme.
type Recipe struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Servings    int    `json:"servings"`

	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`

	Ingredients []RecipeIngredient `json:"ingredients"`
}

type RecipeIngredient struct {
	gorm.Model
	RecipeID  uint    `gorm:"index;not null" json:"recipe_id"`
	FoodID    uint    `gorm:"not null" json:"food_id"`
	FoodName  string  `json:"food_name"`
	QuantityG float64 `json:"quantity_g"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
