package inventory

import (
	"fmt"

	"github.com/kuedapur/backend-go/internal/domain"
)

// Stock status classifications.
const (
	StatusCritical    = "critical"
	StatusLow         = "low"
	StatusAdequate    = "adequate"
	StatusOverstocked = "overstocked"
)

// StockStatus classifies an ingredient's stock against its minimum.
func StockStatus(currentStock, minStock float64) string {
	switch {
	case currentStock <= minStock*0.5:
		return StatusCritical
	case currentStock <= minStock:
		return StatusLow
	case currentStock > minStock*3:
		return StatusOverstocked
	default:
		return StatusAdequate
	}
}

// reorderPoint returns the configured reorder point, falling back to the
// minimum stock when none is set.
func reorderPoint(ing *domain.Ingredient) float64 {
	if ing.ReorderPoint > 0 {
		return ing.ReorderPoint
	}
	return ing.MinStock
}

// IsStockHealthy reports whether an ingredient is above its reorder point,
// meaning any active alerts for it can be resolved.
func IsStockHealthy(ing *domain.Ingredient) bool {
	return ing.CurrentStock > reorderPoint(ing)
}

// BuildAlertPayload decides which alert, if any, an ingredient's stock level
// warrants. Rules are checked most severe first; nil means no alert.
func BuildAlertPayload(ing *domain.Ingredient) *domain.InventoryAlert {
	rp := reorderPoint(ing)

	if ing.CurrentStock <= 0 {
		return &domain.InventoryAlert{
			IngredientID: ing.ID,
			AlertType:    domain.InventoryAlertOutOfStock,
			Severity:     domain.SeverityCritical,
			Message:      fmt.Sprintf("%s habis! Stok saat ini: 0 %s", ing.Name, ing.Unit),
		}
	}

	if ing.CurrentStock <= rp && rp > 0 {
		return &domain.InventoryAlert{
			IngredientID: ing.ID,
			AlertType:    domain.InventoryAlertReorderNeeded,
			Severity:     domain.SeverityHigh,
			Message: fmt.Sprintf("%s perlu dipesan ulang. Stok: %.0f %s, Reorder point: %.0f %s",
				ing.Name, ing.CurrentStock, ing.Unit, rp, ing.Unit),
		}
	}

	if ing.CurrentStock <= ing.MinStock && ing.MinStock > 0 {
		return &domain.InventoryAlert{
			IngredientID: ing.ID,
			AlertType:    domain.InventoryAlertLowStock,
			Severity:     domain.SeverityMedium,
			Message: fmt.Sprintf("%s stok rendah. Stok: %.0f %s, Minimum: %.0f %s",
				ing.Name, ing.CurrentStock, ing.Unit, ing.MinStock, ing.Unit),
		}
	}

	return nil
}
