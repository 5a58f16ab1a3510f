package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "solace/database/repository/booking"
	"solace/models"
	"solace/utils"

	"go.uber.org/zap"
)

// allowedTransitions is the closed transition table. Anything outside it is
// rejected; only forward transitions are legal.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:    {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted},
}

func transitionAllowed(from, to models.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus drives one lifecycle transition. Confirmation converts soft
// holds into hard stock decrements; cancellation releases holds, restocks
// previously confirmed quantities, and computes the refund. Every transition
// appends a provider-notes line rather than overwriting prior notes.
func (e *DefaultBookingEngine) UpdateStatus(ctx context.Context, req models.StatusUpdateRequest) (*models.StatusUpdateResult, error) {
	logger := utils.GetLogger()

	if req.BookingID == "" {
		return nil, &ValidationError{Message: "booking_id is required"}
	}
	if req.ProviderID == "" {
		return nil, &ValidationError{Message: "provider_id is required"}
	}

	record, err := e.Repo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if record == nil {
		return nil, &NotFoundError{Resource: "booking", ID: req.BookingID}
	}
	if record.ProviderID != req.ProviderID {
		return nil, &ForbiddenError{Message: "booking belongs to another provider"}
	}
	if !transitionAllowed(record.Status, req.TargetStatus) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("illegal transition from %s to %s", record.Status, req.TargetStatus),
		}
	}

	note := e.transitionNote(record.Status, req.TargetStatus, req.ProviderID, req.Notes)

	switch req.TargetStatus {
	case models.StatusConfirmed:
		lines, err := e.physicalLines(ctx, req.BookingID)
		if err != nil {
			return nil, err
		}
		if err := e.Repo.ConfirmTransactionally(ctx, req.BookingID, note, lines); err != nil {
			var short *bookingRepo.InsufficientStockError
			if errors.As(err, &short) {
				// The booking stays pending; the caller learns which item failed.
				return nil, &ConflictError{
					Message: fmt.Sprintf("cannot confirm: insufficient stock for %s", short.AddonName),
				}
			}
			var raced *bookingRepo.StatusConflictError
			if errors.As(err, &raced) {
				return nil, &ConflictError{
					Message: "booking was updated by another request, refresh and retry",
				}
			}
			logger.Error("confirm transaction failed",
				zap.String("bookingID", req.BookingID), zap.Error(err))
			return nil, fmt.Errorf("failed to confirm booking: %w", err)
		}
		return &models.StatusUpdateResult{BookingID: req.BookingID, Status: models.StatusConfirmed}, nil

	case models.StatusCancelled:
		lines, err := e.physicalLines(ctx, req.BookingID)
		if err != nil {
			return nil, err
		}
		// Provider-initiated cancellation refunds in full. Stock returns to
		// inventory only when the quantities were actually decremented.
		refund := record.TotalAmount
		restock := record.Status == models.StatusConfirmed
		reason := req.CancellationReason
		if reason == "" {
			reason = "cancelled by provider"
		}
		if err := e.Repo.CancelTransactionally(ctx, req.BookingID, reason, note, refund, lines, restock); err != nil {
			var raced *bookingRepo.StatusConflictError
			if errors.As(err, &raced) {
				return nil, &ConflictError{
					Message: "booking was updated by another request, refresh and retry",
				}
			}
			logger.Error("cancel transaction failed",
				zap.String("bookingID", req.BookingID), zap.Error(err))
			return nil, fmt.Errorf("failed to cancel booking: %w", err)
		}
		return &models.StatusUpdateResult{
			BookingID:     req.BookingID,
			Status:        models.StatusCancelled,
			RefundAmount:  refund,
			RefundPercent: 100,
		}, nil

	default:
		// in_progress and completed carry no inventory effect.
		if err := e.Repo.UpdateStatus(ctx, req.BookingID, req.TargetStatus, note); err != nil {
			return nil, fmt.Errorf("failed to update booking status: %w", err)
		}
		return &models.StatusUpdateResult{BookingID: req.BookingID, Status: req.TargetStatus}, nil
	}
}

// physicalLines resolves the booking's addon lines to the physical-stock
// quantities a transition must touch.
func (e *DefaultBookingEngine) physicalLines(ctx context.Context, bookingID string) ([]bookingRepo.StockLine, error) {
	addonLines, err := e.Repo.AddonsForBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking addons: %w", err)
	}

	var lines []bookingRepo.StockLine
	for _, line := range addonLines {
		if line.AddonID == "" {
			continue
		}
		addon, err := e.Inventory.GetAddon(ctx, line.AddonID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch addon %s: %w", line.AddonID, err)
		}
		if addon == nil || !addon.IsPhysical() {
			continue
		}
		lines = append(lines, bookingRepo.StockLine{
			AddonID:   addon.ID,
			AddonName: addon.Name,
			Quantity:  line.Quantity,
		})
	}
	return lines, nil
}

func (e *DefaultBookingEngine) transitionNote(from, to models.BookingStatus, providerID, notes string) string {
	line := fmt.Sprintf("%s status changed from %s to %s by provider %s",
		e.now().Format("2006-01-02 15:04"), from, to, providerID)
	if notes != "" {
		line += ": " + notes
	}
	return line
}
