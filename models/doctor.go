package models

import "time"

// Doctor represents a practitioner whose calendar the scheduler manages.
// Workday bounds are minutes from midnight (e.g., 480 for 8:00 AM), the same
// convention used by slot suggestion when stepping through a day.
type Doctor struct {
	ID                 int64     `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Specialty          string    `bson:"specialty" json:"specialty"`
	Email              string    `bson:"email" json:"email"`
	WorkdayStartMinute int       `bson:"workdayStartMinute" json:"workdayStartMinute"`
	WorkdayEndMinute   int       `bson:"workdayEndMinute" json:"workdayEndMinute"`
	Active             bool      `bson:"active" json:"active"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateDoctorRequest defines the payload for registering a doctor.
type CreateDoctorRequest struct {
	Name               string `json:"name" binding:"required"`
	Specialty          string `json:"specialty" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	WorkdayStartMinute int    `json:"workdayStartMinute"`
	WorkdayEndMinute   int    `json:"workdayEndMinute"`
}

// UpdateDoctorRequest carries optional field updates.
type UpdateDoctorRequest struct {
	Name               *string `json:"name,omitempty"`
	Specialty          *string `json:"specialty,omitempty"`
	Email              *string `json:"email,omitempty"`
	WorkdayStartMinute *int    `json:"workdayStartMinute,omitempty"`
	WorkdayEndMinute   *int    `json:"workdayEndMinute,omitempty"`
	Active             *bool   `json:"active,omitempty"`
}
