package scheduling

import (
	"context"
	"fmt"
	"time"

	"clinicore/models"
)

// SuggestSlots searches forward from `after` for up to `max` conflict-free
// intervals of the requested duration on the doctor's calendar. The cursor
// advances in fixed grid steps inside the doctor's working hours; the search
// gives up after the configured day limit. An empty result is a valid
// answer, not an error.
func (s *DefaultSchedulingService) SuggestSlots(ctx context.Context, doctorID int64, duration time.Duration, after time.Time, max int) ([]models.SuggestedSlot, error) {
	if duration <= 0 || max <= 0 {
		return nil, ErrInvalidSuggestionParams
	}

	step := s.Cfg.step()
	workStart, workEnd := s.workdayWindow(ctx, doctorID)

	suggestions := make([]models.SuggestedSlot, 0, max)
	for offset := 0; offset < s.Cfg.searchDays(); offset++ {
		day := after.AddDate(0, 0, offset)
		midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayStart := midnight.Add(time.Duration(workStart) * time.Minute)
		dayEnd := midnight.Add(time.Duration(workEnd) * time.Minute)

		cursor := dayStart
		if offset == 0 && after.After(cursor) {
			cursor = alignUp(after, step)
		}

		if !cursor.Add(duration).After(dayEnd) {
			existing, err := s.Appointments.ListCommittedOverlapping(ctx, doctorID, dayStart, dayEnd, 0)
			if err != nil {
				return nil, fmt.Errorf("fetch day appointments: %w", err)
			}

			for ; !cursor.Add(duration).After(dayEnd); cursor = cursor.Add(step) {
				candEnd := cursor.Add(duration)
				if len(ConflictsAmong(existing, cursor, candEnd, 0)) > 0 {
					continue
				}
				suggestions = append(suggestions, models.SuggestedSlot{Start: cursor, End: candEnd})
				if len(suggestions) >= max {
					return suggestions, nil
				}
			}
		}
	}
	return suggestions, nil
}

// alignUp rounds t up to the next grid line of the given step.
func alignUp(t time.Time, step time.Duration) time.Time {
	rounded := t.Truncate(step)
	if rounded.Before(t) {
		rounded = rounded.Add(step)
	}
	return rounded
}
