package drafts

import (
	"context"
	"sync"
	"time"

	"call-console/internal/calls"

	"github.com/google/uuid"
)

// DefaultTTL is how long an untouched draft survives.
const DefaultTTL = 24 * time.Hour

// Creator is the orchestrator operation a submitted draft is handed to.
type Creator interface {
	CreateCallList(ctx context.Context, in calls.NewCallList) (calls.CallList, error)
}

// Fields holds the editable header of a draft. Nil fields are left untouched.
type Fields struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Scenario    *string `json:"scenario"`
}

// Store keeps drafts in memory, keyed by id. Callers get copies; every change goes
// through Store methods. Drafts not touched for ttl are dropped on the next access.
type Store struct {
	mu         sync.Mutex
	drafts     map[string]*Draft
	submitting map[string]struct{}
	ttl        time.Duration
	clock      func() time.Time
}

func NewStore() *Store { return NewStoreWithTTL(DefaultTTL) }

func NewStoreWithTTL(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		drafts:     map[string]*Draft{},
		submitting: map[string]struct{}{},
		ttl:        ttl,
		clock:      time.Now,
	}
}

func (s *Store) Create(f Fields) Draft {
	now := s.clock().UTC()
	d := &Draft{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	applyFields(d, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(now)
	s.drafts[d.ID] = d
	return d.clone()
}

func (s *Store) Get(id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.lookupLocked(id)
	if err != nil {
		return Draft{}, err
	}
	return d.clone(), nil
}

func (s *Store) Update(id string, f Fields) (Draft, error) {
	var out Draft
	err := s.mutate(id, func(d *Draft) error {
		applyFields(d, f)
		out = d.clone()
		return nil
	})
	return out, err
}

// Edit runs fn against the stored draft under the store lock. If fn fails the
// draft is left as it was.
func (s *Store) Edit(id string, fn func(d *Draft) error) (Draft, error) {
	var out Draft
	err := s.mutate(id, func(d *Draft) error {
		work := d.clone()
		if err := fn(&work); err != nil {
			return err
		}
		*d = work
		out = work.clone()
		return nil
	})
	return out, err
}

func (s *Store) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.lookupLocked(id); err != nil {
		return err
	}
	delete(s.drafts, id)
	return nil
}

// Submit validates the draft and sends it whole to the orchestrator. The draft is
// claimed for the duration of the call, so a concurrent Submit of the same draft
// fails with ErrSubmitInProgress. It is destroyed on success and kept on failure
// so the operator can retry.
func (s *Store) Submit(ctx context.Context, id string, creator Creator) (calls.CallList, error) {
	s.mu.Lock()
	d, err := s.lookupLocked(id)
	if err != nil {
		s.mu.Unlock()
		return calls.CallList{}, err
	}
	if _, busy := s.submitting[id]; busy {
		s.mu.Unlock()
		return calls.CallList{}, ErrSubmitInProgress
	}
	if err := d.Validate(); err != nil {
		s.mu.Unlock()
		return calls.CallList{}, err
	}
	payload := d.Payload()
	s.submitting[id] = struct{}{}
	s.mu.Unlock()

	created, err := creator.CreateCallList(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submitting, id)
	if err != nil {
		return calls.CallList{}, err
	}
	delete(s.drafts, id)
	return created, nil
}

// Len reports how many drafts are held, after dropping expired ones.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(s.clock())
	return len(s.drafts)
}

func (s *Store) mutate(id string, fn func(d *Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.lookupLocked(id)
	if err != nil {
		return err
	}
	before := d.UpdatedAt
	d.UpdatedAt = s.clock().UTC()
	if err := fn(d); err != nil {
		d.UpdatedAt = before
		return err
	}
	return nil
}

func (s *Store) lookupLocked(id string) (*Draft, error) {
	s.evictLocked(s.clock())
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// evictLocked drops drafts idle for longer than ttl. Drafts being submitted stay.
func (s *Store) evictLocked(now time.Time) {
	for id, d := range s.drafts {
		if _, busy := s.submitting[id]; busy {
			continue
		}
		if now.Sub(d.UpdatedAt) > s.ttl {
			delete(s.drafts, id)
		}
	}
}

func applyFields(d *Draft, f Fields) {
	if f.Name != nil {
		d.Name = *f.Name
	}
	if f.Description != nil {
		d.Description = *f.Description
	}
	if f.Scenario != nil {
		d.Scenario = *f.Scenario
	}
}
