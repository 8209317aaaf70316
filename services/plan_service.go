package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/999NK/teste2nutria-sub000/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PlanService manages the nutrition/workout plan lifecycle. The invariant is
// at most one active plan per (user, type): every activation runs its
// deactivate-then-activate sequence in a serializable transaction, so two
// concurrent writers cannot both miss each other's row and commit two active
// plans. Transactions aborted by a serialization conflict are retried.
type PlanService struct {
	db *gorm.DB
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{db: db}
}

var planTxOpts = &sql.TxOptions{Isolation: sql.LevelSerializable}

const planTxRetries = 3

// withSerializationRetry re-runs a transaction aborted by a serialization
// conflict (SQLSTATE 40001). Any other error returns immediately.
func withSerializationRetry(fn func() error) error {
	var err error
	for i := 0; i < planTxRetries; i++ {
		err = fn()
		if !isSerializationConflict(err) {
			return err
		}
	}
	return err
}

func isSerializationConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

// Create inserts a plan. When isActive is set the deactivate-then-insert
// sequence runs in one serializable transaction.
func (s *PlanService) Create(ctx context.Context, plan *models.Plan, isActive bool) (*models.Plan, error) {
	if plan.Type != models.PlanTypeNutrition && plan.Type != models.PlanTypeWorkout {
		return nil, ErrInvalidInput
	}
	err := withSerializationRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if isActive {
				if err := tx.Model(&models.Plan{}).
					Where("user_id = ? AND type = ? AND is_active = ?", plan.UserID, plan.Type, true).
					Update("is_active", false).Error; err != nil {
					return err
				}
			}
			plan.IsActive = isActive
			return tx.Create(plan).Error
		}, planTxOpts)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Activate makes the plan the single active one of its type for the user.
func (s *PlanService) Activate(ctx context.Context, planID, userID uint) (*models.Plan, error) {
	var plan models.Plan
	err := withSerializationRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if err := tx.Model(&models.Plan{}).
				Where("user_id = ? AND type = ? AND id <> ?", userID, plan.Type, plan.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}
			return tx.Model(&plan).Update("is_active", true).Error
		}, planTxOpts)
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) Get(ctx context.Context, planID, userID uint) (*models.Plan, error) {
	var plan models.Plan
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) List(ctx context.Context, userID uint) ([]models.Plan, error) {
	var plans []models.Plan
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

// ListActive returns the currently active plans, at most one per type.
func (s *PlanService) ListActive(ctx context.Context, userID uint) ([]models.Plan, error) {
	var plans []models.Plan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("type").
		Find(&plans).Error
	return plans, err
}

// ListHistory returns inactive plans, most recent first.
func (s *PlanService) ListHistory(ctx context.Context, userID uint) ([]models.Plan, error) {
	var plans []models.Plan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, false).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

// Delete hard-deletes the plan. Deleting the active plan leaves the user with
// zero active plans of that type; no prior plan is reactivated.
func (s *PlanService) Delete(ctx context.Context, planID, userID uint) error {
	res := s.db.WithContext(ctx).
		Unscoped().
		Where("id = ? AND user_id = ?", planID, userID).
		Delete(&models.Plan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
