package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type PlanType string

const (
	PlanTypeNutrition PlanType = "nutrition"
	PlanTypeWorkout   PlanType = "workout"
)

// Plan is a stored nutrition or workout schedule, either user-authored or
// AI-generated. Content holds the structured document (days/workouts).
//
// Invariant: at most one active plan per (user, type); activation always
// deactivates every other plan of the same type for that user.
type Plan struct {
	gorm.Model
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	Type        PlanType        `gorm:"type:varchar(20);index;not null" json:"type"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Content     json.RawMessage `gorm:"type:jsonb" json:"content"`
	IsActive    bool            `gorm:"index;default:false" json:"is_active"`

	// Macro targets, set for nutrition plans (whole calories, gram macros)
	TargetCalories int `json:"target_calories,omitempty"`
	TargetProtein  int `json:"target_protein,omitempty"`
	TargetCarbs    int `json:"target_carbs,omitempty"`
	TargetFat      int `json:"target_fat,omitempty"`
}
