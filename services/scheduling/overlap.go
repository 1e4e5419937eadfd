package scheduling

import (
	"sort"

	"clinicore/models"
)

// GroupOverlapping partitions appointments into maximal clusters of
// transitively overlapping intervals. A single pass over the start-sorted
// sequence keeps the running maximum end; an appointment starting strictly
// before that maximum joins the current cluster even when it does not touch
// the most recent member. Touching endpoints do not connect clusters.
func GroupOverlapping(appts []models.Appointment) []models.OverlapGroup {
	if len(appts) == 0 {
		return nil
	}

	sorted := make([]models.Appointment, len(appts))
	copy(sorted, appts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var groups []models.OverlapGroup
	current := models.OverlapGroup{Appointments: []models.Appointment{sorted[0]}}
	maxEnd := sorted[0].End

	for _, a := range sorted[1:] {
		if a.Start.Before(maxEnd) {
			current.Appointments = append(current.Appointments, a)
			if a.End.After(maxEnd) {
				maxEnd = a.End
			}
			continue
		}
		groups = append(groups, current)
		current = models.OverlapGroup{Appointments: []models.Appointment{a}}
		maxEnd = a.End
	}
	return append(groups, current)
}

// AssignColumns lays out every group member in its own column: index is the
// position in the start-sorted group, count the group size. Members that do
// not overlap each other still get separate columns when a third member
// bridges them; the equal-width layout is intentional.
func AssignColumns(groups []models.OverlapGroup) []models.ColumnAssignment {
	var out []models.ColumnAssignment
	for _, g := range groups {
		n := len(g.Appointments)
		for i, a := range g.Appointments {
			out = append(out, models.ColumnAssignment{
				AppointmentID: a.ID,
				ColumnIndex:   i,
				ColumnCount:   n,
			})
		}
	}
	return out
}
