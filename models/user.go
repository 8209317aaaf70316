package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`

	// Physical profile, used for BMI and target recommendations
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"` // "male"|"female"
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"` // "lose"|"maintain"|"gain"

	// Daily macro targets (whole calories, gram macros)
	TargetCalories int `json:"target_calories"`
	TargetProtein  int `json:"target_protein"`
	TargetCarbs    int `json:"target_carbs"`
	TargetFat      int `json:"target_fat"`
}
