package reminder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/db"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
	"gorm.io/gorm"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	enabled bool
	fail    map[string]bool
	sent    []sentMail
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.fail[to] {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(gormsqlite.Open("file:"+name+"?mode=memory&cache=shared"), db.Config())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func strp(s string) *string { return &s }

func seedPatient(t *testing.T, repo *clinic.Repo, openID string, email *string) *models.Patient {
	t.Helper()
	ctx := context.Background()
	u, err := repo.UpsertUser(ctx, clinic.UpsertUserInput{OpenID: openID, Email: email, Role: models.RolePatient})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	p := &models.Patient{UserID: u.ID}
	if err := repo.CreatePatient(ctx, p); err != nil {
		t.Fatalf("patient: %v", err)
	}
	return p
}

func seedAppointment(t *testing.T, repo *clinic.Repo, patientID uint64, when time.Time, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	a := &models.Appointment{PatientID: patientID, DoctorName: "Dr. Lima", ScheduledAt: when, Status: status}
	if err := repo.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("appointment: %v", err)
	}
	return a
}

func TestRunOnce(t *testing.T) {
	gdb := openTestDB(t)
	repo := clinic.NewRepo(gdb)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	withMail := seedPatient(t, repo, "p-mail", strp("ana@example.com"))
	noMail := seedPatient(t, repo, "p-nomail", nil)

	due := seedAppointment(t, repo, withMail.ID, now.Add(3*time.Hour), models.AppointmentConfirmed)
	skipped := seedAppointment(t, repo, noMail.ID, now.Add(4*time.Hour), models.AppointmentScheduled)
	seedAppointment(t, repo, withMail.ID, now.Add(48*time.Hour), models.AppointmentScheduled)
	seedAppointment(t, repo, withMail.ID, now.Add(2*time.Hour), models.AppointmentCancelled)
	seedAppointment(t, repo, withMail.ID, now.Add(-time.Hour), models.AppointmentScheduled)

	mail := &fakeMailer{enabled: true}
	r := New(repo, mail, 24*time.Hour, time.UTC)
	r.now = func() time.Time { return now }

	n, err := r.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 1 || len(mail.sent) != 1 {
		t.Fatalf("expected one reminder, got n=%d sent=%+v", n, mail.sent)
	}
	if mail.sent[0].to != "ana@example.com" || !strings.Contains(mail.sent[0].body, "Dr. Lima") {
		t.Fatalf("unexpected mail %+v", mail.sent[0])
	}

	as, _ := repo.ListAppointmentsByPatient(ctx, withMail.ID)
	for _, a := range as {
		if a.ReminderSent != (a.ID == due.ID) {
			t.Fatalf("appointment %d reminderSent=%v", a.ID, a.ReminderSent)
		}
	}
	as, _ = repo.ListAppointmentsByPatient(ctx, noMail.ID)
	if len(as) != 1 || as[0].ID != skipped.ID || as[0].ReminderSent {
		t.Fatalf("patient without email should stay pending, got %+v", as)
	}

	// second scan does not resend
	n, err = r.RunOnce(ctx)
	if err != nil || n != 0 {
		t.Fatalf("expected no resend, got n=%d err=%v", n, err)
	}
}

func TestRunOnce_SendFailureLeavesPending(t *testing.T) {
	gdb := openTestDB(t)
	repo := clinic.NewRepo(gdb)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	p := seedPatient(t, repo, "p-fail", strp("bob@example.com"))
	a := seedAppointment(t, repo, p.ID, now.Add(time.Hour), models.AppointmentScheduled)

	r := New(repo, &fakeMailer{enabled: true, fail: map[string]bool{"bob@example.com": true}}, 24*time.Hour, time.UTC)
	r.now = func() time.Time { return now }
	if n, err := r.RunOnce(ctx); err != nil || n != 0 {
		t.Fatalf("got n=%d err=%v", n, err)
	}
	as, _ := repo.ListAppointmentsByPatient(ctx, p.ID)
	if len(as) != 1 || as[0].ID != a.ID || as[0].ReminderSent {
		t.Fatalf("expected pending reminder, got %+v", as)
	}
}

func TestRunOnce_DisabledMailerIsNoop(t *testing.T) {
	r := New(clinic.NewRepo(nil), &fakeMailer{}, time.Hour, nil)
	if n, err := r.RunOnce(context.Background()); err != nil || n != 0 {
		t.Fatalf("got n=%d err=%v", n, err)
	}
}

func TestRun_NonPositiveIntervalDoesNotPanic(t *testing.T) {
	r := New(clinic.NewRepo(nil), &fakeMailer{}, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx, 0)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
