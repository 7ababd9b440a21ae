// Package rollup maintains the daily AttendantMetric snapshots from conversation activity.
package rollup

import (
	"context"
	"fmt"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/events"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

type Rollup struct {
	repo *clinic.Repo
	loc  *time.Location
}

// New returns a Rollup that cuts days at midnight in loc (time.Local when nil).
func New(repo *clinic.Repo, loc *time.Location) *Rollup {
	if loc == nil {
		loc = time.Local
	}
	return &Rollup{repo: repo, loc: loc}
}

// HandleEvent recomputes the snapshot of the attendant owning the event's
// conversation for the day the event occurred. Unassigned conversations are ignored.
// A reassignment also rebuilds the previous owner's snapshot.
func (r *Rollup) HandleEvent(ctx context.Context, e events.Event) error {
	attendantID := e.AttendantID
	if e.Type != events.ConversationAssigned || attendantID == 0 {
		conv, err := r.repo.GetConversationByID(ctx, e.ConversationID)
		if err != nil {
			return fmt.Errorf("load conversation %d: %w", e.ConversationID, err)
		}
		if conv == nil || conv.AttendantID == nil {
			return nil
		}
		attendantID = *conv.AttendantID
	}

	at := e.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	if _, err := r.Recompute(ctx, attendantID, at); err != nil {
		return err
	}
	if prev := e.PreviousAttendantID; e.Type == events.ConversationAssigned && prev != 0 && prev != attendantID {
		if _, err := r.Recompute(ctx, prev, at); err != nil {
			return err
		}
	}
	return nil
}

// Recompute rebuilds and upserts the snapshot of attendantID for the day containing day.
func (r *Rollup) Recompute(ctx context.Context, attendantID uint64, day time.Time) (*models.AttendantMetric, error) {
	start := startOfDay(day, r.loc)
	end := start.AddDate(0, 0, 1)

	active, err := r.repo.ListAssignedActiveSince(ctx, attendantID, start)
	if err != nil {
		return nil, err
	}
	closed, err := r.repo.ListAssignedClosedBetween(ctx, attendantID, start, end)
	if err != nil {
		return nil, err
	}

	m := &models.AttendantMetric{AttendantID: attendantID, Date: start.UTC()}

	ids := make([]uint64, 0, len(active))
	for _, c := range active {
		ids = append(ids, c.ID)
		if c.LastMessageAt.Before(end) {
			m.TotalConversations++
		}
	}

	msgs, err := r.repo.ListMessagesByConversations(ctx, ids)
	if err != nil {
		return nil, err
	}
	m.AvgResponseTime = responseTime(msgs, start, end)

	var resolution time.Duration
	for _, c := range closed {
		resolution += c.ClosedAt.Sub(c.CreatedAt)
	}
	m.ClosedConversations = len(closed)
	if len(closed) > 0 {
		m.AvgResolutionTime = int((resolution / time.Duration(len(closed))).Round(time.Second) / time.Second)
	}

	if err := r.repo.UpsertAttendantMetric(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// responseTime is the mean wait in seconds between the first unanswered patient
// message and the attendant reply that answers it, over replies sent in [start, end).
// msgs must be grouped by conversation and chronological within each.
func responseTime(msgs []models.Message, start, end time.Time) int {
	var (
		total   time.Duration
		n       int
		conv    uint64
		waiting *time.Time
	)
	for i := range msgs {
		m := msgs[i]
		if m.ConversationID != conv {
			conv, waiting = m.ConversationID, nil
		}
		switch m.SenderType {
		case models.SenderPatient:
			if waiting == nil {
				t := m.CreatedAt
				waiting = &t
			}
		case models.SenderAttendant:
			if waiting == nil {
				continue
			}
			if !m.CreatedAt.Before(start) && m.CreatedAt.Before(end) {
				total += m.CreatedAt.Sub(*waiting)
				n++
			}
			waiting = nil
		}
	}
	if n == 0 {
		return 0
	}
	return int((total / time.Duration(n)).Round(time.Second) / time.Second)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
