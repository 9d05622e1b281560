package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/salonworks/salon-api/db"
	"github.com/salonworks/salon-api/models"
	"github.com/salonworks/salon-api/schedule"
	"github.com/salonworks/salon-api/utils"
)

// StartCronJobs initializes and starts the background jobs: reminder mails
// for upcoming confirmed appointments, and expiry of pending appointments
// whose start time has already passed without anyone being assigned.
func StartCronJobs() {
	c := cron.New()

	if _, err := c.AddFunc("* * * * *", sendAppointmentReminders); err != nil {
		log.Fatal().Err(err).Msg("Failed to add reminder cron job")
	}
	if _, err := c.AddFunc("*/10 * * * *", expireStalePending); err != nil {
		log.Fatal().Err(err).Msg("Failed to add pending-expiry cron job")
	}

	c.Start()
	log.Info().Msg("Cron job scheduler started")
}

// sendAppointmentReminders mails customers whose confirmed appointment
// starts in roughly an hour.
func sendAppointmentReminders() {
	now := time.Now()
	today := now.Format("2006-01-02")
	nowMinutes := now.Hour()*60 + now.Minute()

	var appointments []models.Appointment
	err := db.DB.Preload("Service").Preload("Staff").
		Where("date = ?", today).
		Where("status = ?", models.StatusConfirmed).
		Where("reminder_sent = ?", false).
		Find(&appointments).Error
	if err != nil {
		log.Error().Err(err).Msg("Error fetching appointments for reminders")
		return
	}

	for _, appointment := range appointments {
		start, err := schedule.ToMinutes(appointment.Time)
		if err != nil {
			log.Error().Err(err).Uint("appointment_id", appointment.ID).Msg("Unparsable appointment time")
			continue
		}

		until := start - nowMinutes
		if until < 55 || until > 65 {
			continue
		}
		if appointment.CustomerEmail == "" {
			continue
		}

		if err := sendReminderEmail(&appointment); err != nil {
			log.Error().Err(err).Uint("appointment_id", appointment.ID).Msg("Failed to send reminder")
			continue
		}

		if err := db.DB.Model(&appointment).Update("reminder_sent", true).Error; err != nil {
			log.Error().Err(err).Uint("appointment_id", appointment.ID).Msg("Failed to mark reminder sent")
			continue
		}
		log.Info().Uint("appointment_id", appointment.ID).Str("to", appointment.CustomerEmail).Msg("Sent reminder")
	}
}

// expireStalePending cancels pending appointments whose start time passed
// with no staff ever assigned, so they stop cluttering the unassigned view.
func expireStalePending() {
	now := time.Now()
	today := now.Format("2006-01-02")
	nowClock := fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute())

	result := db.DB.Model(&models.Appointment{}).
		Where("status = ? AND (date < ? OR (date = ? AND time < ?))",
			models.StatusPending, today, today, nowClock).
		Update("status", models.StatusCanceled)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to expire stale pending appointments")
		return
	}
	if result.RowsAffected > 0 {
		log.Info().Int64("count", result.RowsAffected).Msg("Expired stale pending appointments")
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	staffName := "our team"
	if appointment.Staff != nil {
		staffName = appointment.Staff.Name
	}

	subject := fmt.Sprintf("Reminder: Upcoming Appointment - %s", appointment.Service.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>With:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Salon Team</p>
	`, appointment.CustomerName, appointment.Service.Name, staffName,
		appointment.Date, appointment.Time)

	return utils.SendEmail(appointment.CustomerEmail, subject, body)
}
