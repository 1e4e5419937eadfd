package models

import "time"

// Staff roles.
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleDoctor       = "doctor"
)

// Staff is a clinic login principal (front desk, doctors, admins).
type Staff struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	DoctorID     int64     `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	DeviceTokens []string  `bson:"deviceTokens,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RegisterStaffRequest defines the payload for creating a staff account.
type RegisterStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
	DoctorID int64  `json:"doctorId,omitempty"`
}

// LoginRequest defines the payload for staff login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns the signed token and the authenticated staff member.
type AuthResponse struct {
	Token string `json:"token"`
	Staff Staff  `json:"staff"`
}
