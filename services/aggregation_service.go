package services

import (
	"context"
	"math"
	"time"

	"github.com/999NK/teste2nutria-sub000/logger"
	"github.com/999NK/teste2nutria-sub000/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AggregationService sums meal macros into daily, hourly, weekly and monthly
// rollups. Daily, hourly and weekly rollups use the nutritional-day window
// (see DayRange); monthly keeps plain calendar-date filtering for parity with
// historical numbers.
type AggregationService struct {
	db *gorm.DB
}

func NewAggregationService(db *gorm.DB) *AggregationService {
	return &AggregationService{db: db}
}

type DayTotals struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
	Carbs    int    `json:"carbs"`
	Fat      int    `json:"fat"`
}

type HourBucket struct {
	Hour     int `json:"hour"`
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

type WeekDayTotals struct {
	Date      string `json:"date"`
	DayName   string `json:"day_name"`
	Calories  int    `json:"calories"`
	Protein   int    `json:"protein"`
	Carbs     int    `json:"carbs"`
	Fat       int    `json:"fat"`
	MealCount int    `json:"meal_count"`
}

type MonthWeekTotals struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Calories  int    `json:"calories"`
	Protein   int    `json:"protein"`
	Carbs     int    `json:"carbs"`
	Fat       int    `json:"fat"`
	MealCount int    `json:"meal_count"`
}

// DailyTotals sums meal macros over the nutritional day and upserts the
// per-day snapshot row as a side effect.
func (s *AggregationService) DailyTotals(ctx context.Context, userID uint, date string) (*DayTotals, error) {
	t, err := s.dayTotals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return &DayTotals{
		Date:     date,
		Calories: t.Calories,
		Protein:  t.Protein,
		Carbs:    t.Carbs,
		Fat:      t.Fat,
	}, nil
}

// HourlyBreakdown buckets the nutritional day's meals by the wall-clock hour
// of their timestamp. All 24 buckets are always present, zero-filled.
func (s *AggregationService) HourlyBreakdown(ctx context.Context, userID uint, date string) ([]HourBucket, error) {
	start, end, err := DayRange(date)
	if err != nil {
		return nil, err
	}
	meals, err := s.mealsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]HourBucket, 24)
	for h := range out {
		out[h].Hour = h
	}
	for _, m := range meals {
		b := &out[m.AteAt.Hour()]
		b.Calories += roundMacro(m.TotalCalories)
		b.Protein += roundMacro(m.TotalProtein)
		b.Carbs += roundMacro(m.TotalCarbs)
		b.Fat += roundMacro(m.TotalFat)
	}
	return out, nil
}

// WeeklyTotals returns the Sunday–Saturday week containing the anchor date,
// each day computed through the daily rollup.
func (s *AggregationService) WeeklyTotals(ctx context.Context, userID uint, anchor string) ([]WeekDayTotals, error) {
	d, err := time.ParseInLocation(dayFormat, anchor, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}
	weekStart := d.AddDate(0, 0, -int(d.Weekday()))

	out := make([]WeekDayTotals, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		date := day.Format(dayFormat)
		t, err := s.dayTotals(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		out = append(out, WeekDayTotals{
			Date:      date,
			DayName:   day.Weekday().String(),
			Calories:  t.Calories,
			Protein:   t.Protein,
			Carbs:     t.Carbs,
			Fat:       t.Fat,
			MealCount: t.MealCount,
		})
	}
	return out, nil
}

// MonthlyTotals returns the Sunday-aligned calendar weeks overlapping the
// anchor month, clipped to the month boundaries. Days are filtered by the
// plain calendar date of the meal timestamp, not the nutritional day; this
// matches how historical monthly numbers have always been reported.
func (s *AggregationService) MonthlyTotals(ctx context.Context, userID uint, anchor string) ([]MonthWeekTotals, error) {
	d, err := time.ParseInLocation(dayFormat, anchor, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}
	monthStart := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, -1) // last day of month

	var out []MonthWeekTotals
	for ws := monthStart.AddDate(0, 0, -int(monthStart.Weekday())); !ws.After(monthEnd); ws = ws.AddDate(0, 0, 7) {
		we := ws.AddDate(0, 0, 6)
		clipStart := ws
		if clipStart.Before(monthStart) {
			clipStart = monthStart
		}
		clipEnd := we
		if clipEnd.After(monthEnd) {
			clipEnd = monthEnd
		}

		meals, err := s.mealsBetween(ctx, userID, clipStart, clipEnd.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		w := MonthWeekTotals{
			WeekStart: clipStart.Format(dayFormat),
			WeekEnd:   clipEnd.Format(dayFormat),
			MealCount: len(meals),
		}
		for _, m := range meals {
			w.Calories += roundMacro(m.TotalCalories)
			w.Protein += roundMacro(m.TotalProtein)
			w.Carbs += roundMacro(m.TotalCarbs)
			w.Fat += roundMacro(m.TotalFat)
		}
		out = append(out, w)
	}
	return out, nil
}

// ---------- internals ----------

type dayRollup struct {
	Calories  int
	Protein   int
	Carbs     int
	Fat       int
	MealCount int
}

func (s *AggregationService) dayTotals(ctx context.Context, userID uint, date string) (*dayRollup, error) {
	start, end, err := DayRange(date)
	if err != nil {
		return nil, err
	}
	meals, err := s.mealsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	t := &dayRollup{MealCount: len(meals)}
	for _, m := range meals {
		t.Calories += roundMacro(m.TotalCalories)
		t.Protein += roundMacro(m.TotalProtein)
		t.Carbs += roundMacro(m.TotalCarbs)
		t.Fat += roundMacro(m.TotalFat)
	}
	s.upsertSnapshot(ctx, userID, date, t)
	return t, nil
}

func (s *AggregationService) mealsBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Find(&meals).Error
	return meals, err
}

// upsertSnapshot materializes the day's rollup for historical charting.
// The write is best-effort: a failure is logged and never aborts the read
// path that triggered it.
func (s *AggregationService) upsertSnapshot(ctx context.Context, userID uint, date string, t *dayRollup) {
	snap := models.DailyNutritionSnapshot{
		UserID:    userID,
		Date:      date,
		Calories:  t.Calories,
		Protein:   t.Protein,
		Carbs:     t.Carbs,
		Fat:       t.Fat,
		MealCount: t.MealCount,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "carbs", "fat", "meal_count", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		logger.Warn("daily nutrition snapshot upsert failed",
			zap.Uint("user_id", userID),
			zap.String("date", date),
			zap.Error(err),
		)
	}
}

// roundMacro rounds one meal's macro value to a whole number. Every rollup
// rounds per meal and sums the rounded values, so rollups slicing the same
// meal set (hourly buckets vs the daily total) agree exactly even when meal
// totals are fractional.
func roundMacro(v float64) int {
	return int(math.Round(v))
}
