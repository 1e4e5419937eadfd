package notification

import (
	"context"
	"fmt"
	"time"

	patientRepo "clinicore/database/repository/patient"
	"clinicore/models"
	"clinicore/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes to patients.
type NotificationService interface {
	SendPatientPush(ctx context.Context, patientID int64, title, body string, data map[string]string) error
	NotifyConfirmed(ctx context.Context, appt models.Appointment) error
	NotifyRescheduled(ctx context.Context, appt models.Appointment, oldStart time.Time) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Patients patientRepo.PatientRepository
}

func formatAppointmentTime(t time.Time) string {
	return t.Format("2 January, 3:04 PM")
}

// SendPatientPush looks up the patient's device tokens and sends a push to each.
func (s *DefaultNotificationService) SendPatientPush(ctx context.Context, patientID int64, title, body string, data map[string]string) error {
	p, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("SendPatientPush: could not find patient %d: %w", patientID, err)
	}
	if len(p.DeviceTokens) == 0 {
		return fmt.Errorf("SendPatientPush: patient %d has no device tokens", patientID)
	}

	client := utils.GetFCMClient()
	if client == nil {
		return fmt.Errorf("SendPatientPush: FCM client not initialized")
	}

	msg := &messaging.MulticastMessage{
		Tokens: p.DeviceTokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := client.SendEachForMulticast(ctx, msg); err != nil {
		return fmt.Errorf("SendPatientPush: failed to send FCM message: %w", err)
	}
	return nil
}

// NotifyConfirmed tells the patient their appointment is booked.
func (s *DefaultNotificationService) NotifyConfirmed(ctx context.Context, appt models.Appointment) error {
	title := "Appointment Confirmed"
	body := fmt.Sprintf("Your appointment on %s has been booked.", formatAppointmentTime(appt.Start))
	data := map[string]string{
		"type":          "appointment_confirmed",
		"appointmentId": fmt.Sprintf("%d", appt.ID),
		"start":         appt.Start.Format(time.RFC3339),
	}
	return s.SendPatientPush(ctx, appt.PatientID, title, body, data)
}

// NotifyRescheduled tells the patient their appointment moved.
func (s *DefaultNotificationService) NotifyRescheduled(ctx context.Context, appt models.Appointment, oldStart time.Time) error {
	title := "Appointment Rescheduled"
	body := fmt.Sprintf("Your appointment moved from %s to %s.",
		formatAppointmentTime(oldStart), formatAppointmentTime(appt.Start))
	data := map[string]string{
		"type":          "appointment_rescheduled",
		"appointmentId": fmt.Sprintf("%d", appt.ID),
		"oldStart":      oldStart.Format(time.RFC3339),
		"start":         appt.Start.Format(time.RFC3339),
	}
	return s.SendPatientPush(ctx, appt.PatientID, title, body, data)
}
