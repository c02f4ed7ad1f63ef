package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tpl := Template{Body: "Halo {customer_name}, pesanan {order_id} siap!"}

	message := tpl.Render(map[string]string{
		"customer_name": "Ibu Sari",
		"order_id":      "ORD-20250601-abc123",
	})

	assert.Equal(t, "Halo Ibu Sari, pesanan ORD-20250601-abc123 siap!", message)
}

func TestRenderKeepsUnknownPlaceholders(t *testing.T) {
	tpl := Template{Body: "Total: {total_amount}"}

	message := tpl.Render(map[string]string{"customer_name": "Ibu Sari"})

	assert.Equal(t, "Total: {total_amount}", message)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "6281234567890", NormalizePhone("081234567890"))
	assert.Equal(t, "6281234567890", NormalizePhone("0812-3456-7890"))
	assert.Equal(t, "6281234567890", NormalizePhone("+62 812 3456 7890"))
	assert.Equal(t, "6281234567890", NormalizePhone("6281234567890"))
}

func TestDeepLink(t *testing.T) {
	link := DeepLink("081234567890", "Halo Ibu Sari")

	assert.Equal(t, "https://wa.me/6281234567890?text=Halo+Ibu+Sari", link)
}

func TestFindTemplate(t *testing.T) {
	tpl, ok := FindTemplate("order_confirmation")
	require.True(t, ok)
	assert.Equal(t, CategoryOrderConfirmation, tpl.Category)

	_, ok = FindTemplate("missing")
	assert.False(t, ok)
}

func TestDefaultTemplatesRenderCleanly(t *testing.T) {
	vars := map[string]string{
		"customer_name":   "Ibu Sari",
		"order_id":        "ORD-1",
		"order_items":     "- Bolu x2",
		"total_amount":    "Rp 50000",
		"delivery_date":   "2 Juni 2025",
		"ready_time":      "10:00",
		"due_date":        "5 Juni 2025",
		"payment_details": "BCA 1234567890",
		"business_name":   "Kue Dapur",
	}

	for _, tpl := range DefaultTemplates() {
		message := tpl.Render(vars)
		assert.NotContains(t, message, "{", "template %s left a placeholder", tpl.ID)
	}
}
