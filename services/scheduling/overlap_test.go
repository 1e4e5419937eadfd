package scheduling

import (
	"testing"

	"clinicore/models"
)

func groupIDs(groups []models.OverlapGroup) [][]int64 {
	var out [][]int64
	for _, g := range groups {
		var ids []int64
		for _, a := range g.Appointments {
			ids = append(ids, a.ID)
		}
		out = append(out, ids)
	}
	return out
}

func TestGroupOverlapping(t *testing.T) {
	tests := []struct {
		name  string
		appts []models.Appointment
		want  [][]int64
	}{
		{
			name:  "empty",
			appts: nil,
			want:  nil,
		},
		{
			name: "single appointment",
			appts: []models.Appointment{
				appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
			},
			want: [][]int64{{1}},
		},
		{
			name: "disjoint intervals stay separate",
			appts: []models.Appointment{
				appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
				appt(2, 1, at(0, 11, 0), at(0, 12, 0), models.StatusScheduled),
			},
			want: [][]int64{{1}, {2}},
		},
		{
			name: "touching endpoints do not connect",
			appts: []models.Appointment{
				appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
				appt(2, 1, at(0, 10, 0), at(0, 11, 0), models.StatusScheduled),
			},
			want: [][]int64{{1}, {2}},
		},
		{
			name: "transitive chain forms one cluster",
			appts: []models.Appointment{
				appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
				appt(2, 1, at(0, 9, 30), at(0, 11, 0), models.StatusScheduled),
				appt(3, 1, at(0, 10, 30), at(0, 11, 30), models.StatusScheduled),
			},
			want: [][]int64{{1, 2, 3}},
		},
		{
			name: "long appointment bridges short ones",
			appts: []models.Appointment{
				appt(1, 1, at(0, 9, 0), at(0, 12, 0), models.StatusScheduled),
				appt(2, 1, at(0, 9, 30), at(0, 10, 0), models.StatusScheduled),
				appt(3, 1, at(0, 11, 0), at(0, 11, 30), models.StatusScheduled),
				appt(4, 1, at(0, 13, 0), at(0, 14, 0), models.StatusScheduled),
			},
			want: [][]int64{{1, 2, 3}, {4}},
		},
		{
			name: "unsorted input is sorted first",
			appts: []models.Appointment{
				appt(2, 1, at(0, 9, 30), at(0, 11, 0), models.StatusScheduled),
				appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
			},
			want: [][]int64{{1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupIDs(GroupOverlapping(tt.appts))
			if len(got) != len(tt.want) {
				t.Fatalf("got %d groups %v, want %d groups %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if len(got[i]) != len(tt.want[i]) {
					t.Fatalf("group %d: got %v, want %v", i, got[i], tt.want[i])
				}
				for j := range got[i] {
					if got[i][j] != tt.want[i][j] {
						t.Errorf("group %d member %d: got %d, want %d", i, j, got[i][j], tt.want[i][j])
					}
				}
			}
		})
	}
}

func TestAssignColumns(t *testing.T) {
	groups := GroupOverlapping([]models.Appointment{
		appt(1, 1, at(0, 9, 0), at(0, 12, 0), models.StatusScheduled),
		appt(2, 1, at(0, 9, 30), at(0, 10, 0), models.StatusScheduled),
		appt(3, 1, at(0, 11, 0), at(0, 11, 30), models.StatusScheduled),
		appt(4, 1, at(0, 13, 0), at(0, 14, 0), models.StatusScheduled),
	})
	cols := AssignColumns(groups)

	byID := make(map[int64]models.ColumnAssignment)
	for _, c := range cols {
		byID[c.AppointmentID] = c
	}

	// The bridged cluster gets three columns even though 2 and 3 never
	// overlap each other.
	for id, wantIdx := range map[int64]int{1: 0, 2: 1, 3: 2} {
		c := byID[id]
		if c.ColumnIndex != wantIdx || c.ColumnCount != 3 {
			t.Errorf("appointment %d: got index=%d count=%d, want index=%d count=3",
				id, c.ColumnIndex, c.ColumnCount, wantIdx)
		}
	}
	if c := byID[4]; c.ColumnIndex != 0 || c.ColumnCount != 1 {
		t.Errorf("appointment 4: got index=%d count=%d, want index=0 count=1", c.ColumnIndex, c.ColumnCount)
	}
}
