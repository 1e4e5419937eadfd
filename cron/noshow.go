package cron

import (
	"context"
	"log"
	"time"

	appointmentRepo "clinicore/database/repository/appointment"
)

const noShowGrace = 30 * time.Minute

// InitNoShowSweeper periodically flags scheduled and confirmed appointments
// whose end passed more than the grace period ago as no-shows.
func InitNoShowSweeper(repo appointmentRepo.AppointmentRepository) {
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			cutoff := time.Now().UTC().Add(-noShowGrace)
			n, err := repo.MarkNoShows(ctx, cutoff)
			cancel()
			if err != nil {
				log.Printf("[NoShowSweeper] sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[NoShowSweeper] marked %d appointments as no-show", n)
			}
		}
	}()
}
