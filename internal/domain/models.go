package domain

import "time"

// Ingredient is a raw material tracked in inventory.
type Ingredient struct {
	ID                  string     `json:"id" db:"id"`
	Name                string     `json:"name" db:"name"`
	Unit                string     `json:"unit" db:"unit"`
	CurrentStock        float64    `json:"current_stock" db:"current_stock"`
	MinStock            float64    `json:"min_stock" db:"min_stock"`
	ReorderPoint        float64    `json:"reorder_point" db:"reorder_point"`
	PricePerUnit        float64    `json:"price_per_unit" db:"price_per_unit"`
	WeightedAverageCost *float64   `json:"weighted_average_cost,omitempty" db:"weighted_average_cost"`
	Supplier            string     `json:"supplier" db:"supplier"`
	LeadTimeDays        int        `json:"lead_time_days" db:"lead_time_days"`
	IsActive            bool       `json:"is_active" db:"is_active"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// RecipeIngredient links an ingredient to a recipe with the quantity used.
// Name and unit prices are joined in from the ingredients table when loaded.
type RecipeIngredient struct {
	RecipeID            string   `json:"recipe_id" db:"recipe_id"`
	IngredientID        string   `json:"ingredient_id" db:"ingredient_id"`
	Quantity            float64  `json:"quantity" db:"quantity"`
	Unit                string   `json:"unit" db:"unit"`
	IngredientName      string   `json:"ingredient_name" db:"ingredient_name"`
	PricePerUnit        float64  `json:"price_per_unit" db:"price_per_unit"`
	WeightedAverageCost *float64 `json:"weighted_average_cost,omitempty" db:"weighted_average_cost"`
}

// Recipe is a product with its ingredient list and derived costing fields.
type Recipe struct {
	ID               string             `json:"id" db:"id"`
	Name             string             `json:"name" db:"name"`
	Servings         int                `json:"servings" db:"servings"`
	SellingPrice     float64            `json:"selling_price" db:"selling_price"`
	CostPerUnit      float64            `json:"cost_per_unit" db:"cost_per_unit"`
	MarginPercentage float64            `json:"margin_percentage" db:"margin_percentage"`
	IsActive         bool               `json:"is_active" db:"is_active"`
	CreatedAt        time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" db:"updated_at"`
	Ingredients      []RecipeIngredient `json:"ingredients,omitempty" db:"-"`
}

// HppSnapshot is an immutable point-in-time cost record for a recipe.
// One snapshot exists per (recipe, date); duplicate inserts are no-ops.
type HppSnapshot struct {
	ID                string             `json:"id" db:"id"`
	RecipeID          string             `json:"recipe_id" db:"recipe_id"`
	SnapshotDate      time.Time          `json:"snapshot_date" db:"snapshot_date"`
	HppValue          float64            `json:"hpp_value" db:"hpp_value"`
	MaterialCost      float64            `json:"material_cost" db:"material_cost"`
	OperationalCost   float64            `json:"operational_cost" db:"operational_cost"`
	SellingPrice      float64            `json:"selling_price" db:"selling_price"`
	MarginPercentage  float64            `json:"margin_percentage" db:"margin_percentage"`
	PreviousHpp       float64            `json:"previous_hpp" db:"previous_hpp"`
	ChangePercentage  float64            `json:"change_percentage" db:"change_percentage"`
	MaterialBreakdown MaterialBreakdown  `json:"material_cost_breakdown" db:"material_cost_breakdown"`
	CreatedAt         time.Time          `json:"created_at" db:"created_at"`
}

// MaterialBreakdown maps ingredient IDs to their cost contribution.
type MaterialBreakdown map[string]float64

// HPP alert types.
const (
	HppAlertIncrease  = "hpp_increase"
	HppAlertDecrease  = "hpp_decrease"
	HppAlertLowMargin = "margin_low"
)

// Alert severities, shared by HPP and inventory alerts.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// HppAlert signals a cost swing or margin problem for a recipe.
type HppAlert struct {
	ID               string    `json:"id" db:"id"`
	RecipeID         string    `json:"recipe_id" db:"recipe_id"`
	RecipeName       string    `json:"recipe_name" db:"recipe_name"`
	AlertType        string    `json:"alert_type" db:"alert_type"`
	Severity         string    `json:"severity" db:"severity"`
	Title            string    `json:"title" db:"title"`
	Message          string    `json:"message" db:"message"`
	OldValue         float64   `json:"old_value" db:"old_value"`
	NewValue         float64   `json:"new_value" db:"new_value"`
	ChangePercentage float64   `json:"change_percentage" db:"change_percentage"`
	IsRead           bool      `json:"is_read" db:"is_read"`
	IsDismissed      bool      `json:"is_dismissed" db:"is_dismissed"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Inventory alert types.
const (
	InventoryAlertOutOfStock    = "OUT_OF_STOCK"
	InventoryAlertReorderNeeded = "REORDER_NEEDED"
	InventoryAlertLowStock      = "LOW_STOCK"
)

// InventoryAlert flags an ingredient whose stock needs attention.
type InventoryAlert struct {
	ID             string     `json:"id" db:"id"`
	IngredientID   string     `json:"ingredient_id" db:"ingredient_id"`
	IngredientName string     `json:"ingredient_name" db:"ingredient_name"`
	AlertType      string     `json:"alert_type" db:"alert_type"`
	Severity       string     `json:"severity" db:"severity"`
	Message        string     `json:"message" db:"message"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty" db:"acknowledged_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// Stock transaction types.
const (
	TransactionPurchase   = "PURCHASE"
	TransactionUsage      = "USAGE"
	TransactionAdjustment = "ADJUSTMENT"
)

// StockTransaction records a stock mutation for an ingredient.
type StockTransaction struct {
	ID           string    `json:"id" db:"id"`
	IngredientID string    `json:"ingredient_id" db:"ingredient_id"`
	Type         string    `json:"type" db:"type"`
	Quantity     float64   `json:"quantity" db:"quantity"`
	UnitPrice    float64   `json:"unit_price" db:"unit_price"`
	TotalPrice   float64   `json:"total_price" db:"total_price"`
	Reference    string    `json:"reference" db:"reference"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Order statuses.
const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderReady     = "READY"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// OrderItem is a line on an order.
type OrderItem struct {
	ID        string  `json:"id" db:"id"`
	OrderID   string  `json:"order_id" db:"order_id"`
	RecipeID  string  `json:"recipe_id" db:"recipe_id"`
	Name      string  `json:"name" db:"name"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}

// Order is a customer order. Delivery rolls totals up into the customer
// record; cancellation rolls them back.
type Order struct {
	ID            string      `json:"id" db:"id"`
	OrderNumber   string      `json:"order_number" db:"order_number"`
	CustomerID    string      `json:"customer_id" db:"customer_id"`
	CustomerName  string      `json:"customer_name" db:"customer_name"`
	CustomerPhone string      `json:"customer_phone" db:"customer_phone"`
	Status        string      `json:"status" db:"status"`
	TotalAmount   float64     `json:"total_amount" db:"total_amount"`
	DeliveryDate  *time.Time  `json:"delivery_date,omitempty" db:"delivery_date"`
	Notes         string      `json:"notes" db:"notes"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
	Items         []OrderItem `json:"items,omitempty" db:"-"`
}

// Customer aggregates order history counters.
type Customer struct {
	ID           string     `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Phone        string     `json:"phone" db:"phone"`
	TotalOrders  int        `json:"total_orders" db:"total_orders"`
	TotalSpent   float64    `json:"total_spent" db:"total_spent"`
	FirstOrderAt *time.Time `json:"first_order_at,omitempty" db:"first_order_at"`
	LastOrderAt  *time.Time `json:"last_order_at,omitempty" db:"last_order_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Notification is an ephemeral advisory message shown on the dashboard.
type Notification struct {
	ID          string    `json:"id" db:"id"`
	Type        string    `json:"type" db:"type"`
	Category    string    `json:"category" db:"category"`
	Title       string    `json:"title" db:"title"`
	Message     string    `json:"message" db:"message"`
	Priority    string    `json:"priority" db:"priority"`
	EntityID    string    `json:"entity_id" db:"entity_id"`
	IsRead      bool      `json:"is_read" db:"is_read"`
	IsDismissed bool      `json:"is_dismissed" db:"is_dismissed"`
	ExpiresAt   time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
