package services

import (
	"context"
	"time"

	"github.com/999NK/teste2nutria-sub000/logger"

	"go.uber.org/zap"
)

type progressDeps struct {
	agg *AggregationService
	hub *ProgressHub
}

var _progress progressDeps

func InitProgressDeps(agg *AggregationService, hub *ProgressHub) {
	_progress = progressDeps{agg: agg, hub: hub}
}

// EmitProgress recomputes the nutritional day the meal fell on and pushes the
// fresh totals to the user's open sockets. Safe to call anywhere; a no-op
// until InitProgressDeps has run.
func EmitProgress(userID uint, ateAt time.Time) {
	if _progress.agg == nil {
		return
	}
	date := ResolveDay(ateAt)
	totals, err := _progress.agg.DailyTotals(context.Background(), userID, date)
	if err != nil {
		logger.Warn("progress recompute failed",
			zap.Uint("user_id", userID),
			zap.String("date", date),
			zap.Error(err),
		)
		return
	}
	if _progress.hub != nil {
		_progress.hub.Broadcast(userID, map[string]any{
			"kind":   "progress.updated",
			"totals": totals,
		})
	}
}
