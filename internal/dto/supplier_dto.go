package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SupplierFilter struct {
	Tier         string `form:"tier"`
	ReviewStatus string `form:"review_status"`
	Search       string `form:"search"` // matches name or supplier number
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

type SetReviewStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed flagged"`
}

type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=4000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SupplierResponse struct {
	ID             string `json:"id"`
	SupplierNumber string `json:"supplier_number"`
	Name           string `json:"name"`

	RowCount         float64 `json:"row_count"`
	TotalQuantity    float64 `json:"total_quantity"`
	TotalRevenue     float64 `json:"total_revenue"`
	AvgMargin        float64 `json:"avg_margin"`
	SalesScore       float64 `json:"sales_score"`
	AssortmentScore  float64 `json:"assortment_score"`
	EfficiencyScore  float64 `json:"efficiency_score"`
	MarginScore      float64 `json:"margin_score"`
	TotalScore       float64 `json:"total_score"`
	RevenueShare     float64 `json:"revenue_share"`
	AccumulatedShare float64 `json:"accumulated_share"`

	Diagnosis   *string `json:"diagnosis,omitempty"`
	ShortAction *string `json:"short_action,omitempty"`
	Tier        *string `json:"tier,omitempty"`
	Profile     *string `json:"profile,omitempty"`

	ReviewStatus string  `json:"review_status"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	CommentCount int     `json:"comment_count"`
	UpdatedAt    string  `json:"updated_at"`
}

type SupplierListResponse struct {
	Data  []SupplierResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type CommentResponse struct {
	ID        string  `json:"id"`
	Author    string  `json:"author"`
	AuthorID  string  `json:"author_id"`
	Avatar    *string `json:"avatar,omitempty"`
	Body      string  `json:"body"`
	CreatedAt string  `json:"created_at"`
}
