package models

// ReminderPayload is the asynq task payload for an appointment reminder.
type ReminderPayload struct {
	AppointmentID int64    `json:"appointmentId"`
	PatientID     int64    `json:"patientId"`
	DoctorName    string   `json:"doctorName"`
	PatientName   string   `json:"patientName"`
	Start         string   `json:"start"` // RFC3339
	DeviceTokens  []string `json:"deviceTokens"`
}
