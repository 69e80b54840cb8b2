package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vistara-ai/vistara/internal/models"
	"github.com/vistara-ai/vistara/internal/services/ingest"
	"github.com/vistara-ai/vistara/internal/services/snapshot"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// PaginationResponse contains pagination metadata for API responses.
type PaginationResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// GetPaginationParams extracts pagination parameters from query string.
// Returns page (0-indexed) and pageSize (default 50, max 500).
func GetPaginationParams(r *http.Request) (page, pageSize int) {
	page = 0
	pageSize = 50

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 0 {
			page = p
		}
	}

	if pageSizeStr := r.URL.Query().Get("pageSize"); pageSizeStr != "" {
		if ps, err := strconv.Atoi(pageSizeStr); err == nil && ps > 0 && ps <= 500 {
			pageSize = ps
		}
	}

	return page, pageSize
}

// Paginate applies pagination to a slice of rows.
func Paginate(rows []*models.RegionMonth, page, pageSize int) ([]*models.RegionMonth, PaginationResponse) {
	totalItems := len(rows)
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	pagination := PaginationResponse{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}

	start := page * pageSize
	if start >= totalItems {
		return []*models.RegionMonth{}, pagination
	}

	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	return rows[start:end], pagination
}

// GetFilterParams extracts the presentation filter from query string:
// from/to month bounds (2006-01), a comma-separated state subset and a
// comma-separated risk tier subset. State names are canonicalized the
// same way the ingest pipeline canonicalizes them, so filter values
// match rows regardless of spelling variant.
func GetFilterParams(r *http.Request) snapshot.Filter {
	var filter snapshot.Filter

	if from := r.URL.Query().Get("from"); from != "" {
		if t, err := time.Parse("2006-01", from); err == nil {
			filter.From = t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.Parse("2006-01", to); err == nil {
			filter.To = t
		}
	}

	if states := r.URL.Query().Get("states"); states != "" {
		for _, s := range strings.Split(states, ",") {
			if name := ingest.NormalizeName(s); name != "" {
				filter.States = append(filter.States, name)
			}
		}
	}

	if risks := r.URL.Query().Get("risks"); risks != "" {
		for _, raw := range strings.Split(risks, ",") {
			if risk, ok := parseRisk(raw); ok {
				filter.Risks = append(filter.Risks, risk)
			}
		}
	}

	return filter
}

func parseRisk(raw string) (models.RiskLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return models.RiskHigh, true
	case "medium":
		return models.RiskMedium, true
	case "low":
		return models.RiskLow, true
	default:
		return "", false
	}
}
