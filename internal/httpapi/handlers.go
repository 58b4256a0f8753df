package httpapi

import (
	"context"
	"errors"
	"net/http"

	"call-console/internal/audit"
	"call-console/internal/contacts"
	"call-console/internal/drafts"
	"call-console/internal/orchestrator"
	"call-console/internal/quickcall"
	"call-console/internal/reporting"
	"call-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups the console HTTP handlers. They stay thin: bind input, call
// the orchestrator client or a console service, render JSON.
type Handlers struct {
	Orchestrator *orchestrator.Client
	Drafts       *drafts.Store
	QuickCall    *quickcall.Controller
	Reports      *reporting.Service
	Audit        *audit.Service

	// CSV parses uploaded contact files.
	CSV contacts.Parser

	LoginPath string
}

func (h Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps domain and transport errors to HTTP answers.
func (h Handlers) writeError(c *gin.Context, err error) {
	status, body := h.errorResponse(c, err)
	c.AbortWithStatusJSON(status, body)
	_ = c.Error(err)
}

func (h Handlers) errorResponse(c *gin.Context, err error) (int, gin.H) {
	var reqErr *orchestrator.RequestError
	var missing *contacts.MissingColumnError
	var malformed *contacts.MalformedMetadataError

	switch {
	case errors.Is(err, orchestrator.ErrUnauthorized):
		return http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": h.LoginPath}
	case errors.As(err, &reqErr):
		status := reqErr.StatusCode
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		return status, gin.H{"error": reqErr.Message}
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, gin.H{"error": missing.Error()}
	case errors.As(err, &malformed):
		return http.StatusBadRequest, gin.H{"error": malformed.Error()}
	case errors.Is(err, drafts.ErrNotFound):
		return http.StatusNotFound, gin.H{"error": "draft not found"}
	case errors.Is(err, drafts.ErrIncompleteDraft),
		errors.Is(err, drafts.ErrContactIndex),
		errors.Is(err, quickcall.ErrInvalidRequest):
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	case errors.Is(err, quickcall.ErrNoActiveCall),
		errors.Is(err, quickcall.ErrSuperseded),
		errors.Is(err, drafts.ErrSubmitInProgress):
		return http.StatusConflict, gin.H{"error": err.Error()}
	case errors.Is(err, quickcall.ErrClosed):
		return http.StatusServiceUnavailable, gin.H{"error": "shutting down"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, gin.H{"error": "orchestrator timed out"}
	default:
		logger.FromGin(c).Error("request failed", "err", err)
		return http.StatusInternalServerError, gin.H{"error": "internal error"}
	}
}

func (h Handlers) bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return false
	}
	return true
}

// record appends an audit event. Failures are logged only.
func (h Handlers) record(c *gin.Context, typ audit.EventType, callID, callListID, message string, metadata map[string]any) {
	if h.Audit == nil {
		return
	}
	h.auditFailed(c, typ, h.Audit.Record(c.Request.Context(), typ, callID, callListID, message, metadata))
}

func (h Handlers) auditFailed(c *gin.Context, typ audit.EventType, err error) {
	if err != nil {
		logger.FromGin(c).Warn("audit append failed", "type", string(typ), "err", err)
	}
}
