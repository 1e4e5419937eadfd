package models

import "time"

// ConflictCandidate is the interval being tested against a doctor's calendar.
type ConflictCandidate struct {
	DoctorID int64     `json:"doctorId" binding:"required"`
	Start    time.Time `json:"start" binding:"required"`
	End      time.Time `json:"end" binding:"required"`
}

// SuggestedSlot is a conflict-free alternative of the requested duration.
type SuggestedSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ConflictResult reports overlaps between a candidate interval and the
// doctor's committed appointments. Generation identifies which candidate the
// result was computed for; callers discard results whose generation is older
// than the latest one they issued.
type ConflictResult struct {
	HasConflict bool            `json:"hasConflict"`
	Conflicts   []Appointment   `json:"conflicts"`
	Suggestions []SuggestedSlot `json:"suggestions,omitempty"`
	Generation  int64           `json:"generation,omitempty"`
}

// ConflictCheckRequest is the payload for an advisory conflict check.
// ExcludeID skips the appointment being edited.
type ConflictCheckRequest struct {
	Candidate ConflictCandidate `json:"candidate" binding:"required"`
	ExcludeID int64             `json:"excludeId,omitempty"`
}
