package drafts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"call-console/internal/calls"
	"call-console/internal/contacts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	got  calls.NewCallList
	err  error
	hits int
}

func (f *fakeCreator) CreateCallList(ctx context.Context, in calls.NewCallList) (calls.CallList, error) {
	f.hits++
	f.got = in
	if f.err != nil {
		return calls.CallList{}, f.err
	}
	return calls.CallList{ID: "l1", Name: in.Name, Status: calls.CallListStatusDraft, TotalContacts: len(in.Contacts)}, nil
}

func strPtr(s string) *string { return &s }

func TestDraft_AddContactQuirks(t *testing.T) {
	var d Draft

	_, added, err := d.AddContact("", "Jean", "")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, d.Contacts)

	c, added, err := d.AddContact("+33612345678", "Jean Dupont", `{"key":"value"}`)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, map[string]string{"key": "value"}, c.Metadata)

	_, added, err = d.AddContact("+33600000000", "Marie", "{bad json")
	var malformed *contacts.MalformedMetadataError
	require.ErrorAs(t, err, &malformed)
	assert.False(t, added)
	assert.Len(t, d.Contacts, 1, "contact list unchanged on malformed metadata")
}

func TestDraft_ImportAppendsAfterManualEntries(t *testing.T) {
	var d Draft
	_, _, err := d.AddContact("+33612345678", "Jean Dupont", "")
	require.NoError(t, err)

	parsed, err := d.ImportCSV(contacts.NaiveParser{}, "phoneNumber,clientName\n+33612345678,Jean Dupont\n+33700000000,Marie")
	require.NoError(t, err)
	assert.Len(t, parsed, 2)

	require.Len(t, d.Contacts, 3, "no de-duplication across manual and imported")
	assert.Equal(t, "Marie", d.Contacts[2].ClientName)

	_, err = d.ImportCSV(contacts.NaiveParser{}, "name\nx")
	var missing *contacts.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Len(t, d.Contacts, 3)
}

func TestDraft_RemoveContact(t *testing.T) {
	d := Draft{Contacts: []contacts.Contact{{ClientName: "A"}, {ClientName: "B"}, {ClientName: "C"}}}
	require.NoError(t, d.RemoveContact(1))
	assert.Equal(t, []contacts.Contact{{ClientName: "A"}, {ClientName: "C"}}, d.Contacts)
	assert.ErrorIs(t, d.RemoveContact(5), ErrContactIndex)
}

func TestStore_SubmitRequiresCompleteDraft(t *testing.T) {
	s := NewStore()
	d := s.Create(Fields{Name: strPtr("Relance")})
	creator := &fakeCreator{}

	_, err := s.Submit(context.Background(), d.ID, creator)
	assert.ErrorIs(t, err, ErrIncompleteDraft)
	assert.Zero(t, creator.hits)
}

func TestStore_SubmitDestroysDraftOnSuccess(t *testing.T) {
	s := NewStore()
	d := s.Create(Fields{Name: strPtr("Relance"), Scenario: strPtr("credit-request-refused")})
	_, err := s.Edit(d.ID, func(d *Draft) error {
		_, err := d.ImportCSV(contacts.NaiveParser{}, "phoneNumber,clientName,source\n+33612345678,Jean Dupont,web")
		return err
	})
	require.NoError(t, err)

	creator := &fakeCreator{}
	out, err := s.Submit(context.Background(), d.ID, creator)
	require.NoError(t, err)
	assert.Equal(t, "l1", out.ID)
	assert.Equal(t, "credit-request-refused", creator.got.Scenario)
	require.Len(t, creator.got.Contacts, 1)
	assert.Equal(t, "web", creator.got.Contacts[0].Metadata["source"])

	_, err = s.Get(d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SubmitKeepsDraftOnFailure(t *testing.T) {
	s := NewStore()
	d := s.Create(Fields{Name: strPtr("Relance"), Scenario: strPtr("x")})
	_, err := s.Edit(d.ID, func(d *Draft) error {
		_, _, err := d.AddContact("1", "A", "")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = s.Submit(context.Background(), d.ID, &fakeCreator{err: boom})
	assert.ErrorIs(t, err, boom)

	kept, err := s.Get(d.ID)
	require.NoError(t, err)
	assert.Len(t, kept.Contacts, 1)
}

func TestStore_EditRollsBackOnError(t *testing.T) {
	s := NewStore()
	d := s.Create(Fields{})
	_, err := s.Edit(d.ID, func(d *Draft) error {
		d.Contacts = append(d.Contacts, contacts.Contact{ClientName: "ghost"})
		return errors.New("fail")
	})
	require.Error(t, err)

	got, err := s.Get(d.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Contacts)
}

func TestStore_UpdateAndDiscard(t *testing.T) {
	s := NewStore()
	d := s.Create(Fields{Name: strPtr("a")})

	got, err := s.Update(d.ID, Fields{Description: strPtr("desc")})
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, "desc", got.Description)

	require.NoError(t, s.Discard(d.ID))
	assert.ErrorIs(t, s.Discard(d.ID), ErrNotFound)
	_, err = s.Update("missing", Fields{})
	assert.ErrorIs(t, err, ErrNotFound)
}

type blockingCreator struct {
	mu      sync.Mutex
	hits    int
	reached chan struct{}
	release chan struct{}
}

func (b *blockingCreator) CreateCallList(ctx context.Context, in calls.NewCallList) (calls.CallList, error) {
	b.mu.Lock()
	b.hits++
	b.mu.Unlock()
	b.reached <- struct{}{}
	<-b.release
	return calls.CallList{ID: "l1", Name: in.Name}, nil
}

func completeDraft(t *testing.T, s *Store) Draft {
	t.Helper()
	d := s.Create(Fields{Name: strPtr("Relance"), Scenario: strPtr("x")})
	_, err := s.Edit(d.ID, func(d *Draft) error {
		_, _, err := d.AddContact("1", "A", "")
		return err
	})
	require.NoError(t, err)
	return d
}

func TestStore_ConcurrentSubmitCreatesOnce(t *testing.T) {
	s := NewStore()
	d := completeDraft(t, s)
	creator := &blockingCreator{reached: make(chan struct{}, 1), release: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), d.ID, creator)
		done <- err
	}()
	select {
	case <-creator.reached:
	case <-time.After(time.Second):
		t.Fatal("first submit never reached the creator")
	}

	_, err := s.Submit(context.Background(), d.ID, creator)
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(creator.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, creator.hits)

	_, err = s.Get(d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_EvictsIdleDrafts(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewStoreWithTTL(time.Hour)
	s.clock = func() time.Time { return now }

	stale := s.Create(Fields{Name: strPtr("old")})
	now = now.Add(45 * time.Minute)
	fresh := s.Create(Fields{Name: strPtr("new")})

	now = now.Add(30 * time.Minute)
	_, err := s.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.Get(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, 1, s.Len())
}

func TestStore_EditKeepsDraftAlive(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewStoreWithTTL(time.Hour)
	s.clock = func() time.Time { return now }

	d := s.Create(Fields{})
	now = now.Add(50 * time.Minute)
	_, err := s.Update(d.ID, Fields{Name: strPtr("touched")})
	require.NoError(t, err)

	now = now.Add(50 * time.Minute)
	got, err := s.Get(d.ID)
	require.NoError(t, err)
	assert.Equal(t, "touched", got.Name)
	assert.Equal(t, now.Add(-50*time.Minute), got.UpdatedAt)
}
