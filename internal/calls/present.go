package calls

import (
	"fmt"
	"strings"
)

// Scenario describes one scripted conversation the voice agent can follow.
type Scenario struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

var scenarios = []Scenario{
	{Key: "project-cancelled-by-broker", Name: "Projet annulé par le courtier"},
	{Key: "credit-request-refused", Name: "Demande de crédit refusée"},
	{Key: "professional-prospecting", Name: "Prospection professionnelle"},
	{Key: "client-cancelled-project", Name: "Projet annulé par le client"},
}

// Scenarios returns the known scenario catalog in display order.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// ScenarioName returns the display label of a scenario key, or the key itself when unknown.
func ScenarioName(key string) string {
	for _, s := range scenarios {
		if s.Key == key {
			return s.Name
		}
	}
	return key
}

// OutcomeLabel renders an outcome for display: "callback-requested" becomes
// "Callback Requested"; a missing outcome reads as "Pending".
func OutcomeLabel(o Outcome) string {
	if o == "" {
		return "Pending"
	}
	words := strings.Split(string(o), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// IsFailure reports whether a call counts as failed on the dashboard.
func (c Call) IsFailure() bool {
	return c.Status == CallStatusFailed || c.Outcome == OutcomeDeclined || c.Outcome == OutcomeNoAnswer
}
