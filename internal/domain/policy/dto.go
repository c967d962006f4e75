// internal/domain/policy/dto.go
package policy

type CreatePolicyRequest struct {
	Title           string   `json:"title" binding:"required"`
	Category        string   `json:"category" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	ImageURL        string   `json:"image_url"`
	MinAge          int32    `json:"min_age"`
	MaxAge          int32    `json:"max_age"`
	CoverageRange   string   `json:"coverage_range"`
	DurationOptions []string `json:"duration_options"`
	BasePremium     float64  `json:"base_premium"`
	Benefits        []string `json:"benefits"`
}

type UpdatePolicyRequest struct {
	Title           string   `json:"title" binding:"required"`
	Category        string   `json:"category" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	ImageURL        string   `json:"image_url"`
	MinAge          int32    `json:"min_age"`
	MaxAge          int32    `json:"max_age"`
	CoverageRange   string   `json:"coverage_range"`
	DurationOptions []string `json:"duration_options"`
	BasePremium     float64  `json:"base_premium"`
	Benefits        []string `json:"benefits"`
}

// ListFilters narrows and pages the public policy listing.
type ListFilters struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ListResponse struct {
	Policies []Policy `json:"policies"`
	Total    int64    `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}
