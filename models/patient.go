package models

import "time"

// Patient is a clinic patient record.
type Patient struct {
	ID           int64     `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	BirthDate    string    `bson:"birthDate,omitempty" json:"birthDate,omitempty"` // "YYYY-MM-DD"
	MedicalNotes string    `bson:"medicalNotes,omitempty" json:"medicalNotes,omitempty"`
	DeviceTokens []string  `bson:"deviceTokens,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreatePatientRequest defines the payload for registering a patient.
type CreatePatientRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

// UpdatePatientRequest carries optional field updates.
type UpdatePatientRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	BirthDate    *string `json:"birthDate,omitempty"`
	MedicalNotes *string `json:"medicalNotes,omitempty"`
}
