package models

// ===== AUTH DTOs =====

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	User      User   `json:"user"`
}

// ===== GENERIC RESOURCE DTOs =====

// ListQuery is the query surface of the generic data-access endpoint:
// list against a named table with an optional equality filter.
type ListQuery struct {
	Filter    map[string]any `json:"filter"`
	Page      int            `json:"page"`
	Size      int            `json:"size"`
	SortBy    string         `json:"sort_by"`
	SortOrder string         `json:"sort_order"`
}

type ListResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

// ===== DASHBOARD DTOs =====

type DashboardCounts struct {
	Students      int64 `json:"students"`
	Teachers      int64 `json:"teachers"`
	Classes       int64 `json:"classes"`
	Courses       int64 `json:"courses"`
	Assignments   int64 `json:"assignments"`
	Notifications int64 `json:"notifications"`
	Events        int64 `json:"events"`
}
