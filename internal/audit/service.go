package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"call-console/pkg/logger"

	"github.com/google/uuid"
)

const (
	DefaultRecentLimit = 50
	maxRecentLimit     = 500
)

// Repository is the persistence contract for audit events. It is append-only:
// there is no update or delete.
type Repository interface {
	Append(ctx context.Context, e Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
}

var ErrInvalidEvent = errors.New("audit: invalid event")

// Service records console activity. Callers treat it as best-effort.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	if e.RequestID == "" {
		e.RequestID = logger.RequestID(ctx)
	}
	return s.repo.Append(ctx, e)
}

// Recent lists the newest events. limit <= 0 means DefaultRecentLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]Event, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.repo.Recent(ctx, limit)
}

// Record appends an event built from its parts. Metadata is encoded as JSON
// when present.
func (s *Service) Record(ctx context.Context, typ EventType, callID, callListID, message string, metadata map[string]any) error {
	e := Event{Type: typ, CallID: callID, CallListID: callListID, Message: message}
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		e.Metadata = string(b)
	}
	return s.Append(ctx, e)
}

func (s *Service) LogQuickCall(ctx context.Context, callID, phoneNumber, scenario string) error {
	return s.Record(ctx, EventQuickCallSubmitted, callID, "", "quick call submitted", map[string]any{
		"phoneNumber": phoneNumber,
		"scenario":    scenario,
	})
}

func (s *Service) LogCallListCreated(ctx context.Context, callListID, name string, contacts int) error {
	return s.Record(ctx, EventCallListCreated, "", callListID, "call list created", map[string]any{
		"name":     name,
		"contacts": contacts,
	})
}
