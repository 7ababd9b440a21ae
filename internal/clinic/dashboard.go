package clinic

import (
	"context"
	"math"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

type DashboardStats struct {
	TotalConversations  int `json:"totalConversations"`
	OpenConversations   int `json:"openConversations"`
	ClosedToday         int `json:"closedToday"`
	TotalAttendants     int `json:"totalAttendants"`
	AvailableAttendants int `json:"availableAttendants"`
	BusyAttendants      int `json:"busyAttendants"`
}

// DashboardStats is recomputed on every call from the current conversations and
// attendants. "Today" starts at midnight in the service's clinic timezone.
func (s *Service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	convs, err := s.repo.ListConversations(ctx)
	if err != nil {
		return nil, err
	}
	atts, err := s.repo.ListAttendants(ctx)
	if err != nil {
		return nil, err
	}

	midnight := startOfDay(s.now(), s.loc)
	stats := &DashboardStats{
		TotalConversations: len(convs),
		TotalAttendants:    len(atts),
	}
	for _, c := range convs {
		if c.Status == models.ConversationOpen {
			stats.OpenConversations++
		}
		if c.ClosedAt != nil && !c.ClosedAt.Before(midnight) {
			stats.ClosedToday++
		}
	}
	for _, a := range atts {
		switch a.Status {
		case models.AttendantAvailable:
			stats.AvailableAttendants++
		case models.AttendantBusy:
			stats.BusyAttendants++
		}
	}
	return stats, nil
}

type AttendantPerformance struct {
	AttendantID         uint64                 `json:"attendantId"`
	UserID              uint64                 `json:"userId"`
	Name                string                 `json:"name"`
	Status              models.AttendantStatus `json:"status"`
	TotalConversations  int                    `json:"totalConversations"`
	ClosedConversations int                    `json:"closedConversations"`
	CurrentLoad         int                    `json:"currentLoad"`
	MaxLoad             int                    `json:"maxLoad"`
	AvgResponseTime     int                    `json:"avgResponseTime"`
	AvgSatisfaction     int                    `json:"avgSatisfaction"`
}

// AttendantPerformance rolls up, per attendant, the conversations ever assigned
// and closed, plus the unweighted mean of the daily metric rows in [start, end].
func (s *Service) AttendantPerformance(ctx context.Context, start, end time.Time) ([]AttendantPerformance, error) {
	atts, err := s.repo.ListAttendants(ctx)
	if err != nil {
		return nil, err
	}
	convs, err := s.repo.ListConversations(ctx)
	if err != nil {
		return nil, err
	}
	metrics, err := s.repo.ListAllMetrics(ctx, start, end)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[uint64]string, len(users))
	for _, u := range users {
		if u.Name != nil {
			names[u.ID] = *u.Name
		}
	}

	type counts struct{ total, closed int }
	byAttendant := make(map[uint64]*counts)
	for _, c := range convs {
		if c.AttendantID == nil {
			continue
		}
		ct := byAttendant[*c.AttendantID]
		if ct == nil {
			ct = &counts{}
			byAttendant[*c.AttendantID] = ct
		}
		ct.total++
		if c.Status == models.ConversationClosed {
			ct.closed++
		}
	}

	type sums struct{ response, satisfaction, n int }
	metricSums := make(map[uint64]*sums)
	for _, m := range metrics {
		sm := metricSums[m.AttendantID]
		if sm == nil {
			sm = &sums{}
			metricSums[m.AttendantID] = sm
		}
		sm.response += m.AvgResponseTime
		sm.satisfaction += m.SatisfactionScore
		sm.n++
	}

	out := make([]AttendantPerformance, 0, len(atts))
	for _, a := range atts {
		p := AttendantPerformance{
			AttendantID: a.ID,
			UserID:      a.UserID,
			Name:        names[a.UserID],
			Status:      a.Status,
			CurrentLoad: a.CurrentLoad,
			MaxLoad:     a.MaxLoad,
		}
		if ct := byAttendant[a.ID]; ct != nil {
			p.TotalConversations = ct.total
			p.ClosedConversations = ct.closed
		}
		if sm := metricSums[a.ID]; sm != nil && sm.n > 0 {
			p.AvgResponseTime = roundMean(sm.response, sm.n)
			p.AvgSatisfaction = roundMean(sm.satisfaction, sm.n)
		}
		out = append(out, p)
	}
	return out, nil
}

func roundMean(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
