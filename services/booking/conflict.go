package booking

import (
	"context"
	"fmt"
	"time"

	"solace/models"
	"solace/utils"
)

// dateRangesOverlap applies the standard inclusive range-overlap test to
// "YYYY-MM-DD" strings, which compare correctly as text.
func dateRangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && aEnd >= bStart
}

// timesOverlap applies the half-open interval test to "HH:MM" strings. A
// missing time on either side means that side occupies the full day, which
// overlaps everything. Strictly adjacent windows do not overlap.
func timesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	if aStart == "" || aEnd == "" || bStart == "" || bEnd == "" {
		return true
	}
	return aStart < bEnd && aEnd > bStart
}

// normalizeWindow fills defaults and validates the candidate window.
func normalizeWindow(window models.DateWindow) (models.DateWindow, error) {
	if window.StartDate == "" {
		return window, &ValidationError{Message: "start_date is required"}
	}
	if window.EndDate == "" {
		window.EndDate = window.StartDate
	}
	for _, d := range []string{window.StartDate, window.EndDate} {
		if _, err := time.Parse(utils.DateLayout, d); err != nil {
			return window, &ValidationError{Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", d)}
		}
	}
	if window.EndDate < window.StartDate {
		return window, &ValidationError{Message: "end_date precedes start_date"}
	}
	if (window.StartTime == "") != (window.EndTime == "") {
		return window, &ValidationError{Message: "start_time and end_time must be provided together"}
	}
	if window.StartTime != "" {
		for _, t := range []string{window.StartTime, window.EndTime} {
			if _, err := time.Parse(utils.TimeLayout, t); err != nil {
				return window, &ValidationError{Message: fmt.Sprintf("invalid time %q, expected HH:MM", t)}
			}
		}
		if window.EndTime <= window.StartTime {
			return window, &ValidationError{Message: "end_time must be after start_time"}
		}
	}
	return window, nil
}

// CheckAvailability determines whether the candidate window is free of
// blackout dates and overlapping active reservations for the provider.
func (e *DefaultBookingEngine) CheckAvailability(ctx context.Context, providerID string, window models.DateWindow) (*models.AvailabilityResult, error) {
	if providerID == "" {
		return nil, &ValidationError{Message: "provider_id is required"}
	}
	window, err := normalizeWindow(window)
	if err != nil {
		return nil, err
	}
	return e.checkWindow(ctx, providerID, window)
}

// checkWindow runs the conflict test against blackouts and active booking
// dates. Callers must pass a normalized window.
func (e *DefaultBookingEngine) checkWindow(ctx context.Context, providerID string, window models.DateWindow) (*models.AvailabilityResult, error) {
	// Blackout dates always conflict, regardless of time granularity.
	blackouts, err := e.Blackouts.BlackoutsInRange(ctx, providerID, window.StartDate, window.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blackout dates: %w", err)
	}
	if len(blackouts) > 0 {
		return &models.AvailabilityResult{
			Available: false,
			Conflicts: len(blackouts),
			Reason:    fmt.Sprintf("provider is unavailable on %s", blackouts[0].Date),
		}, nil
	}

	dates, err := e.Repo.ActiveDatesByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active booking dates: %w", err)
	}

	conflicts := 0
	firstConflict := ""
	for _, d := range dates {
		if !dateRangesOverlap(window.StartDate, window.EndDate, d.Date, d.Date) {
			continue
		}
		if !timesOverlap(window.StartTime, window.EndTime, d.StartTime, d.EndTime) {
			continue
		}
		conflicts++
		if firstConflict == "" {
			firstConflict = d.Date
		}
	}

	if conflicts > 0 {
		return &models.AvailabilityResult{
			Available: false,
			Conflicts: conflicts,
			Reason:    fmt.Sprintf("%d conflicting reservation(s), first on %s", conflicts, firstConflict),
		}, nil
	}
	return &models.AvailabilityResult{Available: true}, nil
}
