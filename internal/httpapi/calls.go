package httpapi

import (
	"net/http"
	"strconv"

	"call-console/internal/audit"
	"call-console/internal/calls"

	"github.com/gin-gonic/gin"
)

// callView is a call plus its display fields.
type callView struct {
	calls.Call
	OutcomeLabel string `json:"outcomeLabel"`
	DurationText string `json:"durationText"`
	ScenarioName string `json:"scenarioName"`
}

func viewCall(c calls.Call) callView {
	return callView{
		Call:         c,
		OutcomeLabel: calls.OutcomeLabel(c.Outcome),
		DurationText: calls.FormatDuration(c.Duration),
		ScenarioName: calls.ScenarioName(c.Scenario),
	}
}

func viewCalls(in []calls.Call) []callView {
	out := make([]callView, 0, len(in))
	for _, c := range in {
		out = append(out, viewCall(c))
	}
	return out
}

func filterFromQuery(c *gin.Context) calls.Filter {
	return calls.Filter{
		Search:  c.Query("search"),
		Status:  c.DefaultQuery("status", calls.FilterAll),
		Outcome: c.DefaultQuery("outcome", calls.FilterAll),
	}
}

// ListCalls serves the call history, filtered locally.
func (h Handlers) ListCalls(c *gin.Context) {
	rows, err := h.Orchestrator.ListCalls(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewCalls(filterFromQuery(c).Apply(rows)))
}

func (h Handlers) CallsSummary(c *gin.Context) {
	out, err := h.Reports.CallsSummary(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) GetCall(c *gin.Context) {
	call, err := h.Orchestrator.GetCall(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewCall(call))
}

func (h Handlers) UpdateCall(c *gin.Context) {
	var req calls.CallUpdate
	if !h.bindJSON(c, &req) {
		return
	}
	call, err := h.Orchestrator.UpdateCall(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewCall(call))
}

func (h Handlers) DeleteCall(c *gin.Context) {
	id := c.Param("id")
	if err := h.Orchestrator.DeleteCall(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	h.record(c, audit.EventCallDeleted, id, "", "call deleted", nil)
	c.Status(http.StatusNoContent)
}

// InitiateCall re-dials an existing call from the history view.
func (h Handlers) InitiateCall(c *gin.Context) {
	id := c.Param("id")
	res, err := h.Orchestrator.InitiateCall(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.record(c, audit.EventCallReinitiated, id, "", "call re-initiated", nil)
	c.JSON(http.StatusOK, res)
}

func (h Handlers) Dashboard(c *gin.Context) {
	out, err := h.Reports.Dashboard(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalCalls":      out.TotalCalls,
		"activeCampaigns": out.ActiveCampaigns,
		"successfulCalls": out.SuccessfulCalls,
		"failedCalls":     out.FailedCalls,
		"recentLists":     out.RecentLists,
		"recentCalls":     viewCalls(out.RecentCalls),
	})
}

func (h Handlers) Scenarios(c *gin.Context) {
	c.JSON(http.StatusOK, calls.Scenarios())
}

// Activity lists recent console audit events.
func (h Handlers) Activity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	events, err := h.Audit.Recent(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
