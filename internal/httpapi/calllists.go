package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"call-console/internal/audit"
	"call-console/internal/calls"
	"call-console/internal/contacts"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 5 << 20

func (h Handlers) ListCallLists(c *gin.Context) {
	lists, err := h.Orchestrator.ListCallLists(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (h Handlers) GetCallList(c *gin.Context) {
	list, err := h.Orchestrator.GetCallList(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handlers) CallListProgress(c *gin.Context) {
	out, err := h.Reports.CampaignProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) UpdateCallList(c *gin.Context) {
	var req calls.CallListUpdate
	if !h.bindJSON(c, &req) {
		return
	}
	list, err := h.Orchestrator.UpdateCallList(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handlers) DeleteCallList(c *gin.Context) {
	id := c.Param("id")
	if err := h.Orchestrator.DeleteCallList(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	h.record(c, audit.EventCallListDeleted, "", id, "call list deleted", nil)
	c.Status(http.StatusNoContent)
}

func (h Handlers) StartCallList(c *gin.Context) {
	id := c.Param("id")
	res, err := h.Orchestrator.StartCallList(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.record(c, audit.EventCallListStarted, "", id, "call list started", nil)
	c.JSON(http.StatusOK, res)
}

func (h Handlers) PauseCallList(c *gin.Context) {
	id := c.Param("id")
	res, err := h.Orchestrator.PauseCallList(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.record(c, audit.EventCallListPaused, "", id, "call list paused", nil)
	c.JSON(http.StatusOK, res)
}

type addContactsRequest struct {
	Contacts []contacts.Contact `json:"contacts"`
}

// AddCallListContacts appends contacts to an existing campaign, either as a
// JSON body or as an uploaded CSV file.
func (h Handlers) AddCallListContacts(c *gin.Context) {
	var in []contacts.Contact
	if isJSON(c) {
		var req addContactsRequest
		if !h.bindJSON(c, &req) {
			return
		}
		in = req.Contacts
	} else {
		content, ok := h.readUpload(c)
		if !ok {
			return
		}
		parsed, err := h.CSV.Parse(content)
		if err != nil {
			h.writeError(c, err)
			return
		}
		in = parsed
	}
	if len(in) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "no contacts to add"})
		return
	}

	id := c.Param("id")
	list, err := h.Orchestrator.AddContacts(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.record(c, audit.EventContactsAdded, "", id, "contacts added", map[string]any{"contacts": len(in)})
	c.JSON(http.StatusOK, list)
}

func isJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "application/json")
}

// readUpload returns the CSV text from a multipart "file" field or the raw body.
func (h Handlers) readUpload(c *gin.Context) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			if isTooLarge(err) {
				abortTooLarge(c)
				return "", false
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file field required"})
			return "", false
		}
		f, err := fh.Open()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
			return "", false
		}
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
			return "", false
		}
		return string(b), true
	}

	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		if isTooLarge(err) {
			abortTooLarge(c)
			return "", false
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return "", false
	}
	return string(b), true
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

func abortTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
}
