package services

import (
	"errors"

	"github.com/999NK/teste2nutria-sub000/config"
	"github.com/999NK/teste2nutria-sub000/models"
	"github.com/999NK/teste2nutria-sub000/utils"

	"gorm.io/gorm"
)

type ProfileInput struct {
	Name          string  `json:"name"`
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
}

type GoalsInput struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{
		"id":             user.ID,
		"email":          user.Email,
		"name":           user.Name,
		"weight_kg":      user.WeightKg,
		"height_cm":      user.HeightCm,
		"age":            user.Age,
		"sex":            user.Sex,
		"activity_level": user.ActivityLevel,
		"goal":           user.Goal,
	}
	if bmi, err := utils.CalculateBMI(user.HeightCm, user.WeightKg); err == nil {
		out["bmi"] = bmi
		out["bmi_category"] = utils.BMICategory(bmi)
	}
	return out, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) (*models.User, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.WeightKg > 0 {
		user.WeightKg = input.WeightKg
	}
	if input.HeightCm > 0 {
		user.HeightCm = input.HeightCm
	}
	if input.Age > 0 {
		user.Age = input.Age
	}
	if input.Sex != "" {
		user.Sex = input.Sex
	}
	if input.ActivityLevel != "" {
		user.ActivityLevel = input.ActivityLevel
	}
	if input.Goal != "" {
		user.Goal = input.Goal
	}

	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetGoals returns the user's stored daily targets next to the recommended
// ones computed from the current profile, when the profile is complete.
func GetGoals(userID uint) (map[string]interface{}, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{
		"targets": GoalsInput{
			Calories: user.TargetCalories,
			Protein:  user.TargetProtein,
			Carbs:    user.TargetCarbs,
			Fat:      user.TargetFat,
		},
	}
	rec, err := utils.RecommendedTargets(user.Sex, user.WeightKg, user.HeightCm, user.Age, user.ActivityLevel, user.Goal)
	if err == nil {
		out["recommended"] = rec
	}
	return out, nil
}

func UpdateGoals(userID uint, input GoalsInput) (*models.User, error) {
	if input.Calories < 0 || input.Protein < 0 || input.Carbs < 0 || input.Fat < 0 {
		return nil, ErrInvalidInput
	}
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.TargetCalories = input.Calories
	user.TargetProtein = input.Protein
	user.TargetCarbs = input.Carbs
	user.TargetFat = input.Fat

	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// SnapshotHistory lists the user's materialized daily rollups, newest first,
// for historical charting without re-scanning meals.
func SnapshotHistory(userID uint, limit int) ([]models.DailyNutritionSnapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	var snaps []models.DailyNutritionSnapshot
	err := config.DB.
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&snaps).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return snaps, nil
}
