package booking

import (
	"context"
	"fmt"
	"time"

	reservationRepo "lavellh/database/repository/reservation"
	"lavellh/models"
)

// rangesOverlap applies the half-open overlap rule to wall-clock "HH:MM"
// strings. Zero-padded strings compare correctly byte-wise, so touching
// ranges (a ends where b starts) never conflict.
func rangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return bStart < aEnd && aStart < bEnd
}

// ConflictDetector scans live appointments of a listing for slot overlap.
// It takes no locks; the lifecycle manager serialises acceptance per
// (listing, day).
type ConflictDetector struct {
	Repo reservationRepo.Repository
}

// HasConflict reports whether any live appointment for the listing on the
// given day overlaps the candidate range. excludeID skips the record being
// rescheduled.
func (d *ConflictDetector) HasConflict(ctx context.Context, serviceID, date string, slot models.TimeSlot, excludeID string) (bool, error) {
	live, err := d.Repo.FindLiveAppointments(ctx, serviceID, date, excludeID)
	if err != nil {
		return false, fmt.Errorf("conflict scan failed: %w", err)
	}
	for i := range live {
		if live[i].TimeSlot == nil {
			continue
		}
		if rangesOverlap(slot.StartTime, slot.EndTime, live[i].TimeSlot.StartTime, live[i].TimeSlot.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

// validWallClock checks an "HH:MM" wall-clock string.
func validWallClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// validCalendarDay checks a "YYYY-MM-DD" date string.
func validCalendarDay(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
