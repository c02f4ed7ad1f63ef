package domain

// ListFilter carries common pagination and search parameters.
type ListFilter struct {
	Page     int
	PageSize int
	Search   string
	ActiveOnly bool
}

// Offset returns the SQL offset for the current page.
func (f ListFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit()
}

// Limit returns the SQL limit, defaulting to 50.
func (f ListFilter) Limit() int {
	if f.PageSize <= 0 {
		return 50
	}
	return f.PageSize
}

// AlertFilter narrows alert listings.
type AlertFilter struct {
	ListFilter
	RecipeID     string
	IngredientID string
	Severity     string
	UnreadOnly   bool
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	ListFilter
	CustomerID string
	Status     string
}

// InventoryDashboard bundles the stock overview returned by the API.
type InventoryDashboard struct {
	TotalIngredients int                     `json:"total_ingredients"`
	StatusCounts     map[string]int          `json:"status_counts"`
	Reorders         []ReorderSuggestion     `json:"reorders"`
	ActiveAlerts     []InventoryAlert        `json:"active_alerts"`
	TotalReorderCost float64                 `json:"total_reorder_cost"`
}

// ReorderSuggestion is an ingredient that should be reordered, with the
// recommended quantity and priority from the reorder ladder.
type ReorderSuggestion struct {
	IngredientID        string  `json:"ingredient_id"`
	IngredientName      string  `json:"ingredient_name"`
	Unit                string  `json:"unit"`
	CurrentStock        float64 `json:"current_stock"`
	MinStock            float64 `json:"min_stock"`
	RecommendedQuantity int     `json:"recommended_quantity"`
	Priority            string  `json:"priority"`
	Reason              string  `json:"reason"`
	EstimatedCost       float64 `json:"estimated_cost"`
	Supplier            string  `json:"supplier"`
}
