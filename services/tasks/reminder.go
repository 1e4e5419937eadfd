package tasks

import (
	"encoding/json"
	"time"

	"clinicore/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask wraps an appointment reminder payload in an asynq task
// scheduled for fireAt. The task ID is derived from the appointment so a
// reschedule replaces the pending reminder instead of stacking a second one.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(reminderTaskID(payload.AppointmentID)),
	}
	return task, opts, nil
}
