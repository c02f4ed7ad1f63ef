package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// Template categories.
const (
	CategoryOrderConfirmation = "order_confirmation"
	CategoryDeliveryUpdate    = "delivery_update"
	CategoryPaymentReminder   = "payment_reminder"
	CategoryFollowUp          = "follow_up"
)

// Template is a reusable WhatsApp message with {placeholder} variables.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Body        string   `json:"template"`
	Variables   []string `json:"variables"`
	Description string   `json:"description"`
}

// Render substitutes {key} placeholders with the provided values. Unknown
// placeholders are left intact so missing data stays visible.
func (t Template) Render(vars map[string]string) string {
	message := t.Body
	for key, value := range vars {
		message = strings.ReplaceAll(message, "{"+key+"}", value)
	}
	return message
}

// DeepLink builds a wa.me URL that opens a chat with the message prefilled.
// An Indonesian number with a leading 0 is normalized to the 62 country code.
func DeepLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizePhone(phone), url.QueryEscape(message))
}

// NormalizePhone strips formatting and converts a local 08xx number to
// international 628xx form.
func NormalizePhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if strings.HasPrefix(cleaned, "0") {
		return "62" + cleaned[1:]
	}
	return cleaned
}

// DefaultTemplates are the stock UMKM F&B message templates.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:       "order_confirmation",
			Name:     "Konfirmasi Pesanan",
			Category: CategoryOrderConfirmation,
			Body: "Halo {customer_name}!\n\n" +
				"Terima kasih atas pesanannya:\n\n" +
				"*DETAIL PESANAN*\n" +
				"Order ID: {order_id}\n" +
				"{order_items}\n\n" +
				"Total: *{total_amount}*\n" +
				"Pengiriman: {delivery_date}\n\n" +
				"Pesanan sedang diproses dan akan siap sesuai jadwal.\n\n" +
				"*{business_name}*",
			Variables:   []string{"customer_name", "order_id", "order_items", "total_amount", "delivery_date", "business_name"},
			Description: "Template untuk konfirmasi pesanan baru",
		},
		{
			ID:       "order_ready",
			Name:     "Pesanan Siap",
			Category: CategoryDeliveryUpdate,
			Body: "Halo {customer_name}!\n\n" +
				"Kabar gembira! Pesanan Anda sudah *SIAP*:\n\n" +
				"Order ID: {order_id}\n" +
				"Siap sejak: {ready_time}\n\n" +
				"Silakan diambil atau kami kirim sesuai jadwal pengiriman: {delivery_date}\n\n" +
				"Terima kasih sudah mempercayai kami!\n\n" +
				"*{business_name}*",
			Variables:   []string{"customer_name", "order_id", "ready_time", "delivery_date", "business_name"},
			Description: "Template untuk memberitahu pesanan sudah siap",
		},
		{
			ID:       "payment_reminder",
			Name:     "Reminder Pembayaran",
			Category: CategoryPaymentReminder,
			Body: "Halo {customer_name}!\n\n" +
				"Friendly reminder untuk pesanan:\n\n" +
				"Order ID: {order_id}\n" +
				"Total: *{total_amount}*\n" +
				"Jatuh tempo: {due_date}\n\n" +
				"Mohon segera melakukan pembayaran ya. Transfer ke:\n" +
				"*{payment_details}*\n\n" +
				"Konfirmasi setelah transfer. Terima kasih!\n\n" +
				"*{business_name}*",
			Variables:   []string{"customer_name", "order_id", "total_amount", "due_date", "payment_details", "business_name"},
			Description: "Template untuk mengingatkan pembayaran",
		},
		{
			ID:       "follow_up",
			Name:     "Follow Up Pelanggan",
			Category: CategoryFollowUp,
			Body: "Halo {customer_name}!\n\n" +
				"Sudah lama tidak pesan nih. Kami kangen!\n\n" +
				"Ada menu baru dan promo spesial untuk pelanggan setia seperti Anda.\n\n" +
				"Langsung chat aja untuk info lengkapnya ya!\n\n" +
				"*{business_name}*",
			Variables:   []string{"customer_name", "business_name"},
			Description: "Template untuk re-engagement pelanggan lama",
		},
	}
}

// FindTemplate looks a default template up by ID.
func FindTemplate(id string) (Template, bool) {
	for _, t := range DefaultTemplates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
