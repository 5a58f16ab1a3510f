package provider

import (
	"context"
	"fmt"
	"time"

	availabilityRepo "solace/database/repository/availability"
	catalogRepo "solace/database/repository/catalog"
	"solace/models"
	"solace/utils"
)

// A range longer than this is almost certainly a client bug.
const maxBlackoutRangeDays = 366

// AvailabilityService manages provider blackout dates, the read-only input
// the conflict checker consults.
type AvailabilityService interface {
	AddBlackouts(ctx context.Context, providerID string, entries []models.BlackoutInput) (int, error)
	RemoveBlackouts(ctx context.Context, providerID string, entries []models.BlackoutInput) (int, error)
	ListBlackouts(ctx context.Context, providerID string) ([]models.ProviderBlackout, error)
}

// DefaultAvailabilityService is the production blackout manager.
type DefaultAvailabilityService struct {
	Repo    availabilityRepo.AvailabilityRepository
	Catalog catalogRepo.CatalogRepository
}

// AddBlackouts declares one or more dates or date ranges as unavailable and
// returns how many blackout rows were newly created.
func (s *DefaultAvailabilityService) AddBlackouts(ctx context.Context, providerID string, entries []models.BlackoutInput) (int, error) {
	dates, reasons, err := s.expand(ctx, providerID, entries)
	if err != nil {
		return 0, err
	}

	blackouts := make([]models.ProviderBlackout, 0, len(dates))
	for i, d := range dates {
		blackouts = append(blackouts, models.ProviderBlackout{
			ProviderID: providerID,
			Date:       d,
			Reason:     reasons[i],
		})
	}
	count, err := s.Repo.AddMany(ctx, blackouts)
	if err != nil {
		return count, fmt.Errorf("failed to add blackouts: %w", err)
	}
	return count, nil
}

// RemoveBlackouts deletes blackout rows for the given dates or ranges and
// returns how many were removed.
func (s *DefaultAvailabilityService) RemoveBlackouts(ctx context.Context, providerID string, entries []models.BlackoutInput) (int, error) {
	dates, _, err := s.expand(ctx, providerID, entries)
	if err != nil {
		return 0, err
	}
	count, err := s.Repo.RemoveMany(ctx, providerID, dates)
	if err != nil {
		return count, fmt.Errorf("failed to remove blackouts: %w", err)
	}
	return count, nil
}

// ListBlackouts returns all blackout rows for a provider.
func (s *DefaultAvailabilityService) ListBlackouts(ctx context.Context, providerID string) ([]models.ProviderBlackout, error) {
	if providerID == "" {
		return nil, &ValidationError{Message: "provider id is required"}
	}
	blackouts, err := s.Repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blackouts: %w", err)
	}
	return blackouts, nil
}

// expand validates the provider and flattens date ranges into single dates.
func (s *DefaultAvailabilityService) expand(ctx context.Context, providerID string, entries []models.BlackoutInput) ([]string, []string, error) {
	if providerID == "" {
		return nil, nil, &ValidationError{Message: "provider id is required"}
	}
	if len(entries) == 0 {
		return nil, nil, &ValidationError{Message: "at least one date or range is required"}
	}

	prov, err := s.Catalog.GetProvider(ctx, providerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve provider: %w", err)
	}
	if prov == nil {
		return nil, nil, &NotFoundError{Resource: "provider", ID: providerID}
	}

	var dates []string
	var reasons []string
	for _, entry := range entries {
		start := entry.Date
		end := entry.Date
		if start == "" {
			start, end = entry.StartDate, entry.EndDate
		}
		if start == "" {
			return nil, nil, &ValidationError{Message: "each entry needs a date or a start_date/end_date range"}
		}
		if end == "" {
			end = start
		}

		startDay, err := time.Parse(utils.DateLayout, start)
		if err != nil {
			return nil, nil, &ValidationError{Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", start)}
		}
		endDay, err := time.Parse(utils.DateLayout, end)
		if err != nil {
			return nil, nil, &ValidationError{Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", end)}
		}
		if endDay.Before(startDay) {
			return nil, nil, &ValidationError{Message: "end_date precedes start_date"}
		}
		if endDay.Sub(startDay) > maxBlackoutRangeDays*24*time.Hour {
			return nil, nil, &ValidationError{Message: fmt.Sprintf("range exceeds %d days", maxBlackoutRangeDays)}
		}

		for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d.Format(utils.DateLayout))
			reasons = append(reasons, entry.Reason)
		}
	}
	return dates, reasons, nil
}
