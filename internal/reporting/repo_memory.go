package reporting

import (
	"context"
	"errors"
	"sync"

	"call-console/internal/calls"
)

// MemorySource is a fixed in-memory Source for tests and local development.
type MemorySource struct {
	mu sync.Mutex

	Calls     []calls.Call
	CallLists []calls.CallList
}

func NewMemorySource() *MemorySource { return &MemorySource{} }

func (r *MemorySource) ListCalls(ctx context.Context) ([]calls.Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]calls.Call, len(r.Calls))
	copy(out, r.Calls)
	return out, nil
}

func (r *MemorySource) ListCallLists(ctx context.Context) ([]calls.CallList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]calls.CallList, len(r.CallLists))
	copy(out, r.CallLists)
	return out, nil
}

func (r *MemorySource) GetCallList(ctx context.Context, id string) (calls.CallList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.CallLists {
		if l.ID == id {
			return l, nil
		}
	}
	return calls.CallList{}, errors.New("call list not found")
}
