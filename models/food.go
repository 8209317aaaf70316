package models

import "gorm.io/gorm"

// Food is a catalog entry with nutrients per 100g.
// UserID is nil for global catalog foods and set for user-created entries.
type Food struct {
	gorm.Model
	UserID   *uint   `gorm:"index" json:"user_id,omitempty"`
	Name     string  `gorm:"not null;index" json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}
