package utils

import (
	"errors"
	"math"
)

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// MacroTargets are daily targets in whole calories and gram macros.
type MacroTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

var goalAdjustments = map[string]float64{
	"lose":     -500,
	"maintain": 0,
	"gain":     300,
}

// RecommendedTargets derives daily macro targets from the user's profile
// using Mifflin-St Jeor BMR scaled by activity level, adjusted for the goal,
// split 30/40/30 protein/carbs/fat.
func RecommendedTargets(sex string, weightKg, heightCm float64, age int, activityLevel, goal string) (*MacroTargets, error) {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return nil, errors.New("incomplete profile: weight, height and age required")
	}

	var sexOffset float64
	switch sex {
	case "male":
		sexOffset = 5
	case "female":
		sexOffset = -161
	default:
		return nil, errors.New("incomplete profile: sex required")
	}

	factor, ok := activityFactors[activityLevel]
	if !ok {
		return nil, errors.New("unknown activity level")
	}
	adjust, ok := goalAdjustments[goal]
	if !ok {
		return nil, errors.New("unknown goal")
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age) + sexOffset
	calories := bmr*factor + adjust
	if calories < 1200 {
		calories = 1200
	}

	return &MacroTargets{
		Calories: int(math.Round(calories)),
		Protein:  int(math.Round(calories * 0.30 / 4)),
		Carbs:    int(math.Round(calories * 0.40 / 4)),
		Fat:      int(math.Round(calories * 0.30 / 9)),
	}, nil
}
