package reporting

import "call-console/internal/calls"

// Dashboard is the console landing view.
type Dashboard struct {
	TotalCalls      int `json:"totalCalls"`
	ActiveCampaigns int `json:"activeCampaigns"`
	SuccessfulCalls int `json:"successfulCalls"`
	FailedCalls     int `json:"failedCalls"`

	RecentLists []calls.CallList `json:"recentLists"`
	RecentCalls []calls.Call     `json:"recentCalls"`
}

// CallsSummary aggregates the calls matching a history filter.
type CallsSummary struct {
	TotalCalls      int `json:"totalCalls"`
	PendingCalls    int `json:"pendingCalls"`
	InProgressCalls int `json:"inProgressCalls"`
	CompletedCalls  int `json:"completedCalls"`
	FailedCalls     int `json:"failedCalls"`

	Outcomes map[calls.Outcome]int `json:"outcomes"`

	TotalDurationSeconds   float64 `json:"totalDurationSeconds"`
	AverageDurationSeconds float64 `json:"averageDurationSeconds"`
}

// CampaignProgress captures how far a call list has gone and how its calls
// turned out.
type CampaignProgress struct {
	CallListID        string           `json:"callListId"`
	Name              string           `json:"name"`
	Status            calls.CallListStatus `json:"status"`
	TotalContacts     int              `json:"totalContacts"`
	ProcessedContacts int              `json:"processedContacts"`
	Completion        float64          `json:"completion"`

	CallsAttempted int     `json:"callsAttempted"`
	CallsCompleted int     `json:"callsCompleted"`
	Conversions    int     `json:"conversions"`
	ConnectionRate float64 `json:"connectionRate"`
	ConversionRate float64 `json:"conversionRate"`
}
