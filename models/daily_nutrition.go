package models

import "gorm.io/gorm"

// DailyNutritionSnapshot is a materialized per-user-per-date rollup of
// consumed macros, upserted whenever daily totals are recomputed. It exists
// for historical charting so old days never require re-scanning meals.
type DailyNutritionSnapshot struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex:idx_snapshot_user_date;not null" json:"user_id"`
	Date   string `gorm:"uniqueIndex:idx_snapshot_user_date;type:varchar(10);not null" json:"date"` // YYYY-MM-DD

	Calories  int `json:"calories"`
	Protein   int `json:"protein"`
	Carbs     int `json:"carbs"`
	Fat       int `json:"fat"`
	MealCount int `json:"meal_count"`
}
