package calls

import "strings"

// FilterAll disables a status or outcome filter.
const FilterAll = "all"

// Filter narrows a call history listing. Matching happens locally on the
// collection fetched from the orchestrator.
type Filter struct {
	// Search matches the client name case-insensitively or a phone number substring.
	Search  string
	Status  string
	Outcome string
}

func (f Filter) Match(c Call) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(c.ClientName), term) && !strings.Contains(c.PhoneNumber, term) {
			return false
		}
	}
	if f.Status != "" && f.Status != FilterAll && string(c.Status) != f.Status {
		return false
	}
	if f.Outcome != "" && f.Outcome != FilterAll && string(c.Outcome) != f.Outcome {
		return false
	}
	return true
}

// Apply returns the calls matching f, preserving order.
func (f Filter) Apply(in []Call) []Call {
	out := make([]Call, 0, len(in))
	for _, c := range in {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}
