// Package reminder emails patients ahead of their appointments.
package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

type Mailer interface {
	Enabled() bool
	Send(to, subject, body string) error
}

type Reminder struct {
	repo   *clinic.Repo
	mail   Mailer
	window time.Duration
	loc    *time.Location
	now    func() time.Time
}

func New(repo *clinic.Repo, mail Mailer, window time.Duration, loc *time.Location) *Reminder {
	if loc == nil {
		loc = time.Local
	}
	return &Reminder{repo: repo, mail: mail, window: window, loc: loc, now: time.Now}
}

// RunOnce sends reminders for appointments due within the window and returns
// how many were sent. A patient without an email address is skipped and retried
// on the next scan.
func (r *Reminder) RunOnce(ctx context.Context) (int, error) {
	if r.mail == nil || !r.mail.Enabled() {
		return 0, nil
	}
	now := r.now()
	due, err := r.repo.ListAppointmentsDueForReminder(ctx, now, now.Add(r.window))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, a := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		to, err := r.recipient(ctx, a.PatientID)
		if err != nil {
			return sent, err
		}
		if to == "" {
			log.Printf("[Reminder] skip appointment_id=%d patient_id=%d: no email", a.ID, a.PatientID)
			continue
		}
		if err := r.mail.Send(to, "Appointment reminder", r.body(a)); err != nil {
			log.Printf("[Reminder] send failed appointment_id=%d err=%v", a.ID, err)
			continue
		}
		if err := r.repo.MarkReminderSent(ctx, a.ID); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

const defaultInterval = 15 * time.Minute

// Run scans every interval until ctx is done. A non-positive interval means defaultInterval.
func (r *Reminder) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if n, err := r.RunOnce(ctx); err != nil {
			log.Printf("[Reminder] scan failed err=%v", err)
		} else if n > 0 {
			log.Printf("[Reminder] sent=%d", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (r *Reminder) recipient(ctx context.Context, patientID uint64) (string, error) {
	p, err := r.repo.GetPatientByID(ctx, patientID)
	if err != nil || p == nil {
		return "", err
	}
	u, err := r.repo.GetUserByID(ctx, p.UserID)
	if err != nil || u == nil || u.Email == nil {
		return "", err
	}
	return *u.Email, nil
}

func (r *Reminder) body(a models.Appointment) string {
	when := a.ScheduledAt.In(r.loc).Format("Mon 02 Jan 2006 15:04 MST")
	s := fmt.Sprintf("Hello,\n\nThis is a reminder of your appointment with %s on %s.\n", a.DoctorName, when)
	if a.Specialty != nil && *a.Specialty != "" {
		s += "Specialty: " + *a.Specialty + "\n"
	}
	return s + "\nIf you cannot attend, please reply to this message.\n"
}
