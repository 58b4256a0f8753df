package httpapi

import (
	"net/http"
	"strconv"

	"call-console/internal/audit"
	"call-console/internal/drafts"

	"github.com/gin-gonic/gin"
)

func (h Handlers) CreateDraft(c *gin.Context) {
	var req drafts.Fields
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusCreated, h.Drafts.Create(req))
}

func (h Handlers) GetDraft(c *gin.Context) {
	d, err := h.Drafts.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h Handlers) UpdateDraft(c *gin.Context) {
	var req drafts.Fields
	if !h.bindJSON(c, &req) {
		return
	}
	d, err := h.Drafts.Update(c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h Handlers) DiscardDraft(c *gin.Context) {
	if err := h.Drafts.Discard(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type draftContactRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	ClientName  string `json:"clientName"`
	// Metadata is the raw JSON text typed by the operator.
	Metadata string `json:"metadata"`
}

// AddDraftContact adds a manually entered contact. A blank phone or name is
// accepted and ignored, reported through "added".
func (h Handlers) AddDraftContact(c *gin.Context) {
	var req draftContactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	var added bool
	d, err := h.Drafts.Edit(c.Param("id"), func(d *drafts.Draft) error {
		var err error
		_, added, err = d.AddContact(req.PhoneNumber, req.ClientName, req.Metadata)
		return err
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "draft": d})
}

func (h Handlers) RemoveDraftContact(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	d, err := h.Drafts.Edit(c.Param("id"), func(d *drafts.Draft) error {
		return d.RemoveContact(idx)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ImportDraftCSV appends the contacts of an uploaded CSV file.
func (h Handlers) ImportDraftCSV(c *gin.Context) {
	content, ok := h.readUpload(c)
	if !ok {
		return
	}
	var imported int
	d, err := h.Drafts.Edit(c.Param("id"), func(d *drafts.Draft) error {
		parsed, err := d.ImportCSV(h.CSV, content)
		imported = len(parsed)
		return err
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported, "draft": d})
}

func (h Handlers) SubmitDraft(c *gin.Context) {
	list, err := h.Drafts.Submit(c.Request.Context(), c.Param("id"), h.Orchestrator)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if h.Audit != nil {
		h.auditFailed(c, audit.EventCallListCreated, h.Audit.LogCallListCreated(c.Request.Context(), list.ID, list.Name, list.TotalContacts))
	}
	c.JSON(http.StatusCreated, list)
}
