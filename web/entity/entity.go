// Package entity defines data structures used by the web layer.
package entity

// DashboardStats holds the counters shown to administrators on the dashboard.
type DashboardStats struct {
	TotalNews           int64 `json:"totalNews"`
	PublishedNews       int64 `json:"publishedNews"`
	NewFeedback         int64 `json:"newFeedback"`
	PendingDocuments    int64 `json:"pendingDocuments"`
	PendingApplications int64 `json:"pendingApplications"`
}
