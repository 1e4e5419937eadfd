package models

// OverlapGroup is a maximal cluster of transitively overlapping appointments,
// ordered by start time. Computed per request for calendar layout, never stored.
type OverlapGroup struct {
	Appointments []Appointment `json:"appointments"`
}

// ColumnAssignment places one appointment within its overlap group for
// side-by-side rendering. ColumnIndex is the position in the sorted group and
// ColumnCount the group size, so every member gets its own column even when
// two non-adjacent members would fit in one.
type ColumnAssignment struct {
	AppointmentID int64 `json:"appointmentId"`
	ColumnIndex   int   `json:"columnIndex"`
	ColumnCount   int   `json:"columnCount"`
}

// DayView bundles a doctor's appointments for one day with their layout.
type DayView struct {
	DoctorID     int64              `json:"doctorId"`
	Date         string             `json:"date"` // "YYYY-MM-DD"
	Appointments []Appointment      `json:"appointments"`
	Columns      []ColumnAssignment `json:"columns"`
}
