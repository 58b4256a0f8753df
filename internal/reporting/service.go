package reporting

import (
	"context"
	"errors"

	"call-console/internal/calls"
)

const (
	dashboardLists = 3
	dashboardCalls = 4
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Source is where the reports read from. The orchestrator client satisfies it;
// lists are expected newest first, as the orchestrator returns them.
type Source interface {
	ListCalls(ctx context.Context) ([]calls.Call, error)
	ListCallLists(ctx context.Context) ([]calls.CallList, error)
	GetCallList(ctx context.Context, id string) (calls.CallList, error)
}

type Service struct {
	src Source
}

func NewService(src Source) *Service { return &Service{src: src} }

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	if s.src == nil {
		return Dashboard{}, errors.New("reporting: source not configured")
	}
	callRows, err := s.src.ListCalls(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	lists, err := s.src.ListCallLists(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{TotalCalls: len(callRows)}
	for _, l := range lists {
		if l.Status == calls.CallListStatusActive {
			out.ActiveCampaigns++
		}
	}
	for _, c := range callRows {
		if c.Outcome == calls.OutcomeSuccessful {
			out.SuccessfulCalls++
		}
		if c.IsFailure() {
			out.FailedCalls++
		}
	}
	out.RecentLists = head(lists, dashboardLists)
	out.RecentCalls = head(callRows, dashboardCalls)
	return out, nil
}

func (s *Service) CallsSummary(ctx context.Context, f calls.Filter) (CallsSummary, error) {
	if s.src == nil {
		return CallsSummary{}, errors.New("reporting: source not configured")
	}
	rows, err := s.src.ListCalls(ctx)
	if err != nil {
		return CallsSummary{}, err
	}

	out := CallsSummary{Outcomes: map[calls.Outcome]int{}}
	for _, c := range f.Apply(rows) {
		out.TotalCalls++
		out.TotalDurationSeconds += c.Duration
		switch c.Status {
		case calls.CallStatusPending:
			out.PendingCalls++
		case calls.CallStatusInProgress:
			out.InProgressCalls++
		case calls.CallStatusCompleted:
			out.CompletedCalls++
		case calls.CallStatusFailed:
			out.FailedCalls++
		}
		if c.Outcome != "" {
			out.Outcomes[c.Outcome]++
		}
	}
	if out.TotalCalls > 0 {
		out.AverageDurationSeconds = out.TotalDurationSeconds / float64(out.TotalCalls)
	}
	return out, nil
}

func (s *Service) CampaignProgress(ctx context.Context, callListID string) (CampaignProgress, error) {
	if callListID == "" {
		return CampaignProgress{}, ErrInvalidRequest
	}
	if s.src == nil {
		return CampaignProgress{}, errors.New("reporting: source not configured")
	}
	list, err := s.src.GetCallList(ctx, callListID)
	if err != nil {
		return CampaignProgress{}, err
	}
	rows, err := s.src.ListCalls(ctx)
	if err != nil {
		return CampaignProgress{}, err
	}

	out := CampaignProgress{
		CallListID:        list.ID,
		Name:              list.Name,
		Status:            list.Status,
		TotalContacts:     list.TotalContacts,
		ProcessedContacts: list.ProcessedContacts,
	}
	if list.TotalContacts > 0 {
		out.Completion = float64(list.ProcessedContacts) / float64(list.TotalContacts)
	}
	for _, c := range rows {
		if c.CallListID != callListID {
			continue
		}
		out.CallsAttempted++
		if c.Status == calls.CallStatusCompleted {
			out.CallsCompleted++
		}
		if c.Outcome == calls.OutcomeSuccessful {
			out.Conversions++
		}
	}
	if out.CallsAttempted > 0 {
		out.ConnectionRate = float64(out.CallsCompleted) / float64(out.CallsAttempted)
		out.ConversionRate = float64(out.Conversions) / float64(out.CallsAttempted)
	}
	return out, nil
}

func head[T any](in []T, n int) []T {
	if len(in) > n {
		in = in[:n]
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
