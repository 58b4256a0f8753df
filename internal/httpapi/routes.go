package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Register mounts the console API. session guards everything except health
// and the login/register/logout endpoints.
func (h Handlers) Register(r *gin.Engine, session gin.HandlerFunc, upgrader *websocket.Upgrader) {
	r.GET("/healthz", h.Health)

	public := r.Group("/v1/auth")
	{
		public.POST("/login", h.Login)
		public.POST("/register", h.RegisterUser)
		public.POST("/logout", h.Logout)
	}

	v1 := r.Group("/v1")
	v1.Use(session)
	{
		v1.GET("/auth/profile", h.Profile)
		v1.PUT("/auth/profile", h.UpdateProfile)
		v1.PUT("/auth/password", h.UpdatePassword)

		v1.GET("/dashboard", h.Dashboard)
		v1.GET("/scenarios", h.Scenarios)
		v1.GET("/activity", h.Activity)

		calls := v1.Group("/calls")
		{
			calls.GET("", h.ListCalls)
			calls.GET("/summary", h.CallsSummary)
			calls.GET("/:id", h.GetCall)
			calls.PUT("/:id", h.UpdateCall)
			calls.DELETE("/:id", h.DeleteCall)
			calls.POST("/:id/initiate", h.InitiateCall)
		}

		lists := v1.Group("/call-lists")
		{
			lists.GET("", h.ListCallLists)
			lists.GET("/:id", h.GetCallList)
			lists.GET("/:id/progress", h.CallListProgress)
			lists.PUT("/:id", h.UpdateCallList)
			lists.DELETE("/:id", h.DeleteCallList)
			lists.POST("/:id/start", h.StartCallList)
			lists.POST("/:id/pause", h.PauseCallList)
			lists.POST("/:id/contacts", h.AddCallListContacts)
		}

		ds := v1.Group("/drafts")
		{
			ds.POST("", h.CreateDraft)
			ds.GET("/:id", h.GetDraft)
			ds.PATCH("/:id", h.UpdateDraft)
			ds.DELETE("/:id", h.DiscardDraft)
			ds.POST("/:id/contacts", h.AddDraftContact)
			ds.DELETE("/:id/contacts/:index", h.RemoveDraftContact)
			ds.POST("/:id/import", h.ImportDraftCSV)
			ds.POST("/:id/submit", h.SubmitDraft)
		}

		qc := v1.Group("/quick-call")
		{
			qc.POST("", h.SubmitQuickCall)
			qc.GET("", h.GetQuickCall)
			qc.DELETE("", h.ResetQuickCall)
			qc.POST("/hangup", h.HangupQuickCall)
			qc.GET("/stream", h.StreamQuickCall(upgrader))
		}
	}
}
