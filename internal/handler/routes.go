package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/oatside/gala/gala-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, eventHandler *EventHandler, categoryHandler *CategoryHandler, entryHandler *EntryHandler, summaryHandler *SummaryHandler, receiptHandler *ReceiptHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())

	// Event routes
	events := api.Group("/events")
	events.POST("", eventHandler.CreateEvent)
	events.GET("", eventHandler.GetEvents)
	events.GET("/:id", eventHandler.GetEvent)
	events.PUT("/:id", eventHandler.UpdateEvent)
	events.DELETE("/:id", eventHandler.DeleteEvent)

	// Per-event sub-resources
	events.POST("/:id/categories", categoryHandler.CreateCategories)
	events.GET("/:id/categories", categoryHandler.GetCategories)
	events.POST("/:id/entries", entryHandler.CreateEntry)
	events.GET("/:id/entries", entryHandler.GetEntries)
	events.GET("/:id/summary", summaryHandler.GetSummary)

	// Category routes
	categories := api.Group("/categories")
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Entry routes
	entries := api.Group("/entries")
	entries.PATCH("/:id", entryHandler.UpdateEntryField)
	entries.PATCH("/:id/toggle-reimbursement", entryHandler.ToggleReimbursement)
	entries.DELETE("/:id", entryHandler.DeleteEntry)
	entries.POST("/:id/receipt", receiptHandler.UploadReceipt)

	// WebSocket endpoint (outside the versioned group, no auth middleware:
	// browsers cannot set headers on WebSocket requests)
	e.GET("/ws", wsHandler.HandleWS)
}
