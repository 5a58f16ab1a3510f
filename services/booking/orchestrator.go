package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "solace/database/repository/booking"
	"solace/models"
	"solace/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates a booking request, checks every requested window
// and addon line, and persists the whole booking graph atomically. The same
// checks re-run inside the transaction as a guard, so a rejected request
// leaves zero rows behind and two concurrent requests cannot both take the
// last unit of stock.
func (e *DefaultBookingEngine) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	logger := utils.GetLogger()

	windows, err := validateBookingRequest(&req)
	if err != nil {
		return nil, err
	}

	pkg, err := e.Catalog.GetPackage(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package: %w", err)
	}
	if pkg == nil {
		return nil, &NotFoundError{Resource: "package", ID: req.PackageID}
	}

	provider, err := e.Catalog.GetProvider(ctx, pkg.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}
	if provider == nil {
		return nil, &NotFoundError{Resource: "provider", ID: pkg.ProviderID}
	}

	// Resolve catalog addon lines up front so the guard and the reserve
	// events see the same view of which lines are physical stock.
	type physicalLine struct {
		addon    *models.Addon
		quantity int
	}
	var physical []physicalLine
	for i := range req.Addons {
		line := &req.Addons[i]
		if line.AddonID == "" {
			continue // ad hoc custom add-on, nothing to reserve
		}
		addon, err := e.Inventory.GetAddon(ctx, line.AddonID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch addon: %w", err)
		}
		if addon == nil {
			return nil, &NotFoundError{Resource: "addon", ID: line.AddonID}
		}
		if addon.IsPhysical() {
			physical = append(physical, physicalLine{addon: addon, quantity: line.Quantity})
		}
	}

	// guard runs twice: once up front for a fast rejection, and again inside
	// the transaction where its reads are isolated with the inserts.
	guard := func(gctx context.Context) error {
		for _, w := range windows {
			result, err := e.checkWindow(gctx, provider.ID, w)
			if err != nil {
				return err
			}
			if !result.Available {
				return &ConflictError{
					Message:   fmt.Sprintf("date %s is not available: %s", w.StartDate, result.Reason),
					Conflicts: result.Conflicts,
				}
			}
		}
		for _, p := range physical {
			result, err := e.CheckStock(gctx, p.addon.ID, p.quantity, "")
			if err != nil {
				return err
			}
			if !result.Available {
				return &ConflictError{
					Message: fmt.Sprintf("insufficient stock for %s: %d requested, %d available",
						p.addon.Name, p.quantity, result.AvailableStock),
				}
			}
		}
		return nil
	}
	if err := guard(ctx); err != nil {
		return nil, err
	}

	now := e.now()
	bookingID := uuid.New().String()
	record := &models.Booking{
		ID:            bookingID,
		Reference:     FormatReference(bookingID),
		PackageID:     pkg.ID,
		ProviderID:    provider.ID,
		UserID:        req.UserID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		AttachmentIDs: req.AttachmentIDs,
		TotalAmount:   req.TotalAmount,
		Status:        models.StatusPending,
		CreatedAt:     now,
	}

	dates := make([]models.BookingDate, 0, len(req.Dates))
	for _, d := range req.Dates {
		dates = append(dates, models.BookingDate{
			BookingID: bookingID,
			Date:      d.Date,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			EventType: d.EventType,
			Location:  d.Location,
		})
	}

	addonLines := make([]models.BookingAddon, 0, len(req.Addons))
	for _, a := range req.Addons {
		addonLines = append(addonLines, models.BookingAddon{
			BookingID: bookingID,
			AddonID:   a.AddonID,
			Name:      a.Name,
			Price:     a.Price,
			Quantity:  a.Quantity,
		})
	}

	// A reserve event records the soft hold without touching the counter;
	// the decrement happens only on confirmation.
	events := make([]models.StockEvent, 0, len(physical))
	for _, p := range physical {
		events = append(events, models.StockEvent{
			ID:             uuid.New().String(),
			AddonID:        p.addon.ID,
			BookingID:      bookingID,
			Type:           models.StockEventReserve,
			Quantity:       p.quantity,
			StockDelta:     0,
			ResultingStock: p.addon.StockQuantity,
			CreatedAt:      now,
		})
	}

	if err := e.Repo.CreateBookingGraph(ctx, record, dates, addonLines, events, guard); err != nil {
		var conflictErr *ConflictError
		var validationErr *ValidationError
		if errors.As(err, &conflictErr) || errors.As(err, &validationErr) {
			return nil, err
		}
		var writeRace *bookingRepo.WriteConflictError
		if errors.As(err, &writeRace) {
			// A concurrent create for the same provider dates or addon won
			// the transaction race; this request must be retried against the
			// now-committed state.
			return nil, &ConflictError{
				Message: "a concurrent booking took the requested dates or stock, please retry",
			}
		}
		logger.Error("booking create transaction failed",
			zap.String("bookingID", bookingID), zap.Error(err))
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	logger.Info("booking created",
		zap.String("bookingID", bookingID),
		zap.String("reference", record.Reference),
		zap.String("providerID", provider.ID))

	return &models.BookingResponse{
		BookingID: bookingID,
		Reference: record.Reference,
		Status:    record.Status,
		Provider:  *provider,
	}, nil
}

// validateBookingRequest checks required fields and normalizes every
// requested window. Quantities default to 1.
func validateBookingRequest(req *models.BookingRequest) ([]models.DateWindow, error) {
	if req.PackageID == "" {
		return nil, &ValidationError{Message: "package_id is required"}
	}
	if req.CustomerName == "" {
		return nil, &ValidationError{Message: "customer_name is required"}
	}
	if req.CustomerEmail == "" {
		return nil, &ValidationError{Message: "customer_email is required"}
	}
	if len(req.Dates) == 0 {
		return nil, &ValidationError{Message: "at least one date is required"}
	}
	if req.TotalAmount < 0 {
		return nil, &ValidationError{Message: "total_amount cannot be negative"}
	}

	windows := make([]models.DateWindow, 0, len(req.Dates))
	for _, d := range req.Dates {
		window, err := normalizeWindow(models.DateWindow{
			StartDate: d.Date,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
		if err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}

	for i := range req.Addons {
		line := &req.Addons[i]
		if line.Name == "" {
			return nil, &ValidationError{Message: "addon name is required"}
		}
		if line.Quantity == 0 {
			line.Quantity = 1
		}
		if line.Quantity < 1 {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid quantity for addon %s", line.Name)}
		}
	}
	return windows, nil
}
