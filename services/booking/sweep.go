package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "solace/database/repository/booking"
	"solace/utils"

	"go.uber.org/zap"
)

// SweepStalePending cancels pending bookings whose hold TTL has expired.
// Correctness never depends on this: expired holds are already excluded from
// the reserved sum at read time. The sweep only keeps abandoned bookings from
// accumulating as inert pending rows.
func (e *DefaultBookingEngine) SweepStalePending(ctx context.Context) (int, error) {
	logger := utils.GetLogger()

	cutoff := e.now().Add(-e.holdTTL())
	stale, err := e.Repo.StalePending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale pending bookings: %w", err)
	}

	swept := 0
	for _, b := range stale {
		lines, err := e.physicalLines(ctx, b.ID)
		if err != nil {
			logger.Error("sweep: failed to resolve addon lines",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		note := fmt.Sprintf("%s booking hold expired, cancelled automatically",
			e.now().Format("2006-01-02 15:04"))
		// Never confirmed, so nothing returns to stock and nothing is refunded.
		if err := e.Repo.CancelTransactionally(ctx, b.ID, "booking hold expired", note, 0, lines, false); err != nil {
			var raced *bookingRepo.StatusConflictError
			if errors.As(err, &raced) {
				// A provider transitioned the booking between the listing and
				// the cancel; leave it alone.
				continue
			}
			logger.Error("sweep: failed to cancel stale booking",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		swept++
	}

	if swept > 0 {
		logger.Info("swept stale pending bookings", zap.Int("count", swept))
	}
	return swept, nil
}
