package scheduling

import (
	"context"
	"fmt"
	"time"

	"clinicore/models"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ConflictsAmong filters existing appointments down to the committed ones
// that overlap [start, end), skipping excludeID (the appointment being
// edited, 0 for none).
func ConflictsAmong(existing []models.Appointment, start, end time.Time, excludeID int64) []models.Appointment {
	var out []models.Appointment
	for _, a := range existing {
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		if !a.Committed() {
			continue
		}
		if Overlaps(start, end, a.Start, a.End) {
			out = append(out, a)
		}
	}
	return out
}

// CheckConflict tests a candidate interval against the doctor's committed
// appointments. Pure query: nothing is written. When the candidate conflicts,
// the result carries up to MaxSuggestions alternative slots of the same
// duration, nearest first.
func (s *DefaultSchedulingService) CheckConflict(ctx context.Context, cand models.ConflictCandidate, excludeID int64) (*models.ConflictResult, error) {
	if !cand.End.After(cand.Start) {
		return nil, fmt.Errorf("candidate end %s is not after start %s", cand.End.Format(time.RFC3339), cand.Start.Format(time.RFC3339))
	}

	conflicts, err := s.Appointments.ListCommittedOverlapping(ctx, cand.DoctorID, cand.Start, cand.End, excludeID)
	if err != nil {
		return nil, fmt.Errorf("fetch overlapping appointments: %w", err)
	}

	result := &models.ConflictResult{
		HasConflict: len(conflicts) > 0,
		Conflicts:   conflicts,
	}
	if result.HasConflict {
		suggestions, err := s.SuggestSlots(ctx, cand.DoctorID, cand.End.Sub(cand.Start), cand.Start, s.Cfg.MaxSuggestions)
		if err != nil {
			// Suggestions are best-effort; the conflict verdict stands.
			s.logger().Sugar().Warnf("slot suggestion failed for doctor %d: %v", cand.DoctorID, err)
		} else {
			result.Suggestions = suggestions
		}
	}
	return result, nil
}
