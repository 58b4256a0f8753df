package httpapi

import (
	"net/http"
	"time"

	"call-console/internal/audit"
	"call-console/internal/quickcall"
	"call-console/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
)

type quickCallView struct {
	Session quickcall.Session `json:"session"`
	Recent  []callView        `json:"recentCalls"`
}

func (h Handlers) quickCallView(s quickcall.Session) quickCallView {
	return quickCallView{Session: s, Recent: viewCalls(h.QuickCall.RecentCalls())}
}

// SubmitQuickCall starts a one-off call. Remote failures still answer with the
// session so the operator sees the event log.
func (h Handlers) SubmitQuickCall(c *gin.Context) {
	var req quickcall.Request
	if !h.bindJSON(c, &req) {
		return
	}
	s, err := h.QuickCall.Submit(c.Request.Context(), req)
	switch {
	case err == nil:
		if h.Audit != nil {
			h.auditFailed(c, audit.EventQuickCallSubmitted, h.Audit.LogQuickCall(c.Request.Context(), s.CallID, req.PhoneNumber, req.Scenario))
		}
		c.JSON(http.StatusOK, h.quickCallView(s))
	case s.Status == "":
		h.writeError(c, err)
	default:
		h.writeErrorWithSession(c, err, s)
	}
}

func (h Handlers) writeErrorWithSession(c *gin.Context, err error, s quickcall.Session) {
	status, body := h.errorResponse(c, err)
	body["session"] = s
	c.AbortWithStatusJSON(status, body)
	_ = c.Error(err)
}

// GetQuickCall returns the current session and refreshes the recent calls list.
func (h Handlers) GetQuickCall(c *gin.Context) {
	if _, err := h.QuickCall.RefreshRecent(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.quickCallView(h.QuickCall.Snapshot()))
}

func (h Handlers) HangupQuickCall(c *gin.Context) {
	s, err := h.QuickCall.Hangup(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.record(c, audit.EventQuickCallHungUp, s.CallID, "", "quick call hung up", nil)
	c.JSON(http.StatusOK, h.quickCallView(s))
}

func (h Handlers) ResetQuickCall(c *gin.Context) {
	c.JSON(http.StatusOK, h.quickCallView(h.QuickCall.Reset()))
}

// StreamQuickCall pushes a JSON snapshot of the session after every change.
func (h Handlers) StreamQuickCall(upgrader *websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromGin(c)
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", "err", err)
			return
		}
		defer conn.Close()

		updates, cancel := h.QuickCall.Subscribe()
		defer cancel()

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			conn.SetReadLimit(512)
			_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(streamPongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
						log.Debug("websocket read ended", "err", err)
					}
					return
				}
			}
		}()

		ping := time.NewTicker(streamPingPeriod)
		defer ping.Stop()

		for {
			select {
			case <-closed:
				return
			case s, ok := <-updates:
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
					return
				}
				if err := conn.WriteJSON(s); err != nil {
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

// NewUpgrader accepts websocket handshakes from the configured origins only.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := map[string]struct{}{}
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if _, ok := allowed["*"]; ok {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
	}
}
