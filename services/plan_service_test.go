package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/999NK/teste2nutria-sub000/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func countActive(t *testing.T, db *gorm.DB, userID uint, planType models.PlanType) int64 {
	t.Helper()
	var n int64
	err := db.Model(&models.Plan{}).
		Where("user_id = ? AND type = ? AND is_active = ?", userID, planType, true).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}

func TestPlanCreate_ActiveDeactivatesOthers(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	ctx := context.Background()
	const userID = 1

	a, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeNutrition, Name: "Plan A"}, true)
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	b, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeNutrition, Name: "Plan B"}, true)
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	if n := countActive(t, db, userID, models.PlanTypeNutrition); n != 1 {
		t.Fatalf("active nutrition plans = %d, want 1", n)
	}
	got, err := svc.Get(ctx, a.ID, userID)
	if err != nil {
		t.Fatalf("get A: %v", err)
	}
	if got.IsActive {
		t.Error("plan A still active after B was created active")
	}
	got, err = svc.Get(ctx, b.ID, userID)
	if err != nil {
		t.Fatalf("get B: %v", err)
	}
	if !got.IsActive {
		t.Error("plan B not active after active create")
	}
}

func TestPlanCreate_InactiveLeavesActiveAlone(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	ctx := context.Background()
	const userID = 1

	a, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeWorkout, Name: "Plan A"}, true)
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	if _, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeWorkout, Name: "Plan B"}, false); err != nil {
		t.Fatalf("create B: %v", err)
	}

	got, err := svc.Get(ctx, a.ID, userID)
	if err != nil {
		t.Fatalf("get A: %v", err)
	}
	if !got.IsActive {
		t.Error("plan A deactivated by an inactive create")
	}
}

func TestPlanCreate_TypesAreIndependent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	ctx := context.Background()
	const userID = 1

	if _, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeNutrition, Name: "Eat"}, true); err != nil {
		t.Fatalf("create nutrition: %v", err)
	}
	if _, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeWorkout, Name: "Lift"}, true); err != nil {
		t.Fatalf("create workout: %v", err)
	}

	active, err := svc.ListActive(ctx, userID)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("active plans = %d, want 2 (one per type)", len(active))
	}
}

func TestPlanCreate_RejectsUnknownType(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	_, err := svc.Create(context.Background(), &models.Plan{UserID: 1, Type: "yoga", Name: "X"}, false)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestPlanActivate_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	ctx := context.Background()
	const userID = 1

	a, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeNutrition, Name: "Plan A"}, true)
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	b, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeNutrition, Name: "Plan B"}, false)
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	if _, err := svc.Activate(ctx, b.ID, userID); err != nil {
		t.Fatalf("activate B: %v", err)
	}

	active, err := svc.ListActive(ctx, userID)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].ID != b.ID {
		t.Fatalf("ListActive = %+v, want exactly [B]", active)
	}

	history, err := svc.ListHistory(ctx, userID)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	found := false
	for _, p := range history {
		if p.ID == a.ID {
			found = true
		}
		if p.ID == b.ID {
			t.Error("active plan B shows up in history")
		}
	}
	if !found {
		t.Error("deactivated plan A missing from history")
	}
}

// Repeated activations must always converge to exactly one active plan.
func TestPlanActivate_InvariantUnderSequences(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	ctx := context.Background()
	const userID = 1

	var ids []uint
	for _, name := range []string{"A", "B", "C"} {
		p, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeNutrition, Name: name}, true)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, p.ID)
	}

	for _, id := range []uint{ids[0], ids[2], ids[1], ids[1], ids[0]} {
		if _, err := svc.Activate(ctx, id, userID); err != nil {
			t.Fatalf("activate %d: %v", id, err)
		}
		if n := countActive(t, db, userID, models.PlanTypeNutrition); n != 1 {
			t.Fatalf("after activating %d: active = %d, want 1", id, n)
		}
	}
}

func TestPlanActivate_NotOwned(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.Plan{UserID: 1, Type: models.PlanTypeNutrition, Name: "Mine"}, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Activate(ctx, p.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("activating another user's plan: error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Activate(ctx, 9999, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("activating missing plan: error = %v, want ErrNotFound", err)
	}
}

func TestPlanHistory_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	ctx := context.Background()
	const userID = 1

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	for i, name := range []string{"Old", "Mid", "New"} {
		plan := &models.Plan{UserID: userID, Type: models.PlanTypeNutrition, Name: name}
		plan.CreatedAt = base.AddDate(0, 0, i)
		if _, err := svc.Create(ctx, plan, false); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	history, err := svc.ListHistory(ctx, userID)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if history[0].Name != "New" || history[2].Name != "Old" {
		t.Errorf("history order = [%s, %s, %s], want newest first", history[0].Name, history[1].Name, history[2].Name)
	}
}

// Plan writes run at serializable isolation; a transaction aborted with
// SQLSTATE 40001 must be retried, while every other error surfaces at once.
func TestPlanWrites_RetryOnSerializationConflict(t *testing.T) {
	t.Run("conflict retries until success", func(t *testing.T) {
		calls := 0
		err := withSerializationRetry(func() error {
			calls++
			if calls < 3 {
				return fmt.Errorf("commit failed: %w", &pgconn.PgError{Code: "40001"})
			}
			return nil
		})
		if err != nil {
			t.Fatalf("error = %v, want nil after retry", err)
		}
		if calls != 3 {
			t.Errorf("attempts = %d, want 3", calls)
		}
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		calls := 0
		sentinel := errors.New("connection refused")
		err := withSerializationRetry(func() error {
			calls++
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Errorf("error = %v, want the original error", err)
		}
		if calls != 1 {
			t.Errorf("attempts = %d, want 1", calls)
		}
	})

	t.Run("persistent conflict surfaces after the retry budget", func(t *testing.T) {
		calls := 0
		err := withSerializationRetry(func() error {
			calls++
			return &pgconn.PgError{Code: "40001"}
		})
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != "40001" {
			t.Errorf("error = %v, want the serialization conflict", err)
		}
		if calls != planTxRetries {
			t.Errorf("attempts = %d, want %d", calls, planTxRetries)
		}
	})
}

func TestPlanDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	ctx := context.Background()
	const userID = 1

	p, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeNutrition, Name: "Active"}, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, &models.Plan{UserID: userID, Type: models.PlanTypeNutrition, Name: "Older"}, false); err != nil {
		t.Fatalf("create older: %v", err)
	}

	if err := svc.Delete(ctx, p.ID, userID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// no cascading reactivation: zero active until an explicit activate
	if n := countActive(t, db, userID, models.PlanTypeNutrition); n != 0 {
		t.Errorf("active after deleting the active plan = %d, want 0", n)
	}
	if _, err := svc.Get(ctx, p.ID, userID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted plan still readable: %v", err)
	}
	if err := svc.Delete(ctx, p.ID, userID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: error = %v, want ErrNotFound", err)
	}
}
