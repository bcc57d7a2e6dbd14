package dto

import emaildomain "mailsort-backend/internal/email/domain"

// SyncResult is the aggregate outcome of one sync invocation. Synced counts
// every message handled without error (already stored or newly created), New
// counts only newly created rows, Errors counts per-message failures that did
// not abort the batch.
type SyncResult struct {
	Success bool `json:"success"`
	Synced  int  `json:"synced"`
	New     int  `json:"new"`
	Errors  int  `json:"errors"`
	Total   int  `json:"total"`
}

// RecomputeResult reports how many emails the backfill embedded.
type RecomputeResult struct {
	Success   bool `json:"success"`
	Processed int  `json:"processed"`
}

type ClassifyRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
	IsManual   bool   `json:"is_manual"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"required"`
	Icon        string `json:"icon" binding:"required"`
}

type EmailsResponse struct {
	Emails []*emaildomain.Email `json:"emails"`
	Total  int                  `json:"total"`
}

type StatsResponse struct {
	TotalEmails       int64   `json:"total_emails"`
	CategorizedEmails int64   `json:"categorized_emails"`
	TotalCategories   int64   `json:"total_categories"`
	AverageConfidence float64 `json:"average_confidence"`
}
