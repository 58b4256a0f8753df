package httpapi

import (
	"net/http"

	"call-console/internal/orchestrator"

	"github.com/gin-gonic/gin"
)

// Login authenticates against the orchestrator. The token stays in the
// console's credential store and is not returned to the browser.
func (h Handlers) Login(c *gin.Context) {
	var req orchestrator.Credentials
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}
	res, err := h.Orchestrator.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": res.User})
}

func (h Handlers) RegisterUser(c *gin.Context) {
	var req orchestrator.Registration
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name, email and password required"})
		return
	}
	res, err := h.Orchestrator.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": res.User})
}

// Logout drops the stored token and the quick-call session.
func (h Handlers) Logout(c *gin.Context) {
	if err := h.Orchestrator.Logout(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	if h.QuickCall != nil {
		h.QuickCall.Reset()
	}
	c.JSON(http.StatusOK, gin.H{"redirect": h.LoginPath})
}

func (h Handlers) Profile(c *gin.Context) {
	u, err := h.Orchestrator.Profile(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h Handlers) UpdateProfile(c *gin.Context) {
	var req orchestrator.ProfileUpdate
	if !h.bindJSON(c, &req) {
		return
	}
	u, err := h.Orchestrator.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h Handlers) UpdatePassword(c *gin.Context) {
	var req orchestrator.PasswordUpdate
	if !h.bindJSON(c, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "currentPassword and newPassword required"})
		return
	}
	if err := h.Orchestrator.UpdatePassword(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
