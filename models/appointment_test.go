package models

import (
	"errors"
	"testing"
	"time"
)

func TestValidateInterval(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"one hour", base, base.Add(time.Hour), nil},
		{"minimum duration", base, base.Add(MinAppointmentDuration), nil},
		{"maximum duration", base, base.Add(MaxAppointmentDuration), nil},
		{"end equals start", base, base, ErrInvalidInterval},
		{"end before start", base, base.Add(-time.Hour), ErrInvalidInterval},
		{"below minimum", base, base.Add(10 * time.Minute), ErrDurationOutOfRange},
		{"above maximum", base, base.Add(9 * time.Hour), ErrDurationOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterval(tt.start, tt.end)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommitted(t *testing.T) {
	for _, status := range []string{StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusNoShow} {
		if !(Appointment{Status: status}).Committed() {
			t.Errorf("%s should count as committed", status)
		}
	}
	if (Appointment{Status: StatusCancelled}).Committed() {
		t.Error("cancelled must not count as committed")
	}
}

func TestValidStatusAndType(t *testing.T) {
	if !ValidStatus(StatusNoShow) || ValidStatus("unknown") {
		t.Error("ValidStatus verdicts wrong")
	}
	if !ValidType(TypeFollowUp) || ValidType("walk_in") {
		t.Error("ValidType verdicts wrong")
	}
}
