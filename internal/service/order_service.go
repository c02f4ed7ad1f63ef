package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kuedapur/backend-go/internal/config"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
	"github.com/kuedapur/backend-go/internal/whatsapp"
	"github.com/rs/zerolog/log"
)

// WhatsAppMessage is a rendered template plus its wa.me deep link.
type WhatsAppMessage struct {
	TemplateID string `json:"template_id"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	Link       string `json:"link"`
}

type OrderService struct {
	orders        repository.OrderRepository
	customers     repository.CustomerRepository
	notifications repository.NotificationRepository
	business      config.BusinessConfig
	notifTTL      time.Duration
}

func NewOrderService(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	notifications repository.NotificationRepository,
	cfg config.BusinessConfig,
) *OrderService {
	ttlDays := cfg.NotificationTTLDays
	if ttlDays <= 0 {
		ttlDays = 7
	}

	return &OrderService{
		orders:        orders,
		customers:     customers,
		notifications: notifications,
		business:      cfg,
		notifTTL:      time.Duration(ttlDays) * 24 * time.Hour,
	}
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error) {
	return s.orders.List(ctx, filter)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	return o, nil
}

// Create stores a new order. The total is always recomputed from the line
// items; the customer must exist.
func (s *OrderService) Create(ctx context.Context, o *domain.Order) error {
	c, err := s.customers.GetByID(ctx, o.CustomerID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("customer %s: %w", o.CustomerID, ErrNotFound)
	}

	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	o.TotalAmount = total

	if o.Status == "" {
		o.Status = domain.OrderPending
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return err
	}

	s.notify(ctx, &domain.Notification{
		Type:      "order_created",
		Category:  "orders",
		Title:     "Pesanan Baru",
		Message:   fmt.Sprintf("Pesanan %s dari %s, total Rp %.0f", o.OrderNumber, c.Name, o.TotalAmount),
		Priority:  domain.SeverityLow,
		EntityID:  o.ID,
	})

	return nil
}

func (s *OrderService) Update(ctx context.Context, o *domain.Order) error {
	return s.orders.Update(ctx, o)
}

// UpdateStatus transitions an order. Delivery and cancellation roll customer
// totals up and back inside the repository transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case domain.OrderPending, domain.OrderConfirmed, domain.OrderReady,
		domain.OrderDelivered, domain.OrderCancelled:
	default:
		return fmt.Errorf("invalid order status %q", status)
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if status == domain.OrderReady || status == domain.OrderDelivered {
		o, err := s.Get(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("order_id", id).Msg("orders: reload after status change failed")
			return nil
		}
		s.notify(ctx, &domain.Notification{
			Type:     "order_" + strings.ToLower(status),
			Category: "orders",
			Title:    fmt.Sprintf("Pesanan %s", statusLabel(status)),
			Message:  fmt.Sprintf("Pesanan %s untuk %s %s", o.OrderNumber, o.CustomerName, statusLabel(status)),
			Priority: domain.SeverityLow,
			EntityID: o.ID,
		})
	}

	return nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// BuildWhatsAppMessage renders a message template for an order and builds
// the wa.me link to send it.
func (s *OrderService) BuildWhatsAppMessage(ctx context.Context, orderID, templateID string) (*WhatsAppMessage, error) {
	o, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	tpl, ok := whatsapp.FindTemplate(templateID)
	if !ok {
		return nil, fmt.Errorf("template %s: %w", templateID, ErrNotFound)
	}

	vars := map[string]string{
		"customer_name": o.CustomerName,
		"order_id":      o.OrderNumber,
		"order_items":   formatOrderItems(o.Items),
		"total_amount":  fmt.Sprintf("Rp %.0f", o.TotalAmount),
		"business_name": s.business.Name,
	}
	if o.DeliveryDate != nil {
		vars["delivery_date"] = o.DeliveryDate.Format("2 January 2006")
	}

	message := tpl.Render(vars)
	return &WhatsAppMessage{
		TemplateID: tpl.ID,
		Phone:      whatsapp.NormalizePhone(o.CustomerPhone),
		Message:    message,
		Link:       whatsapp.DeepLink(o.CustomerPhone, message),
	}, nil
}

func (s *OrderService) notify(ctx context.Context, n *domain.Notification) {
	n.ExpiresAt = time.Now().Add(s.notifTTL)
	if err := s.notifications.Insert(ctx, n); err != nil {
		log.Warn().Err(err).Str("entity_id", n.EntityID).Msg("orders: notification insert failed")
	}
}

func statusLabel(status string) string {
	switch status {
	case domain.OrderReady:
		return "siap diambil"
	case domain.OrderDelivered:
		return "sudah dikirim"
	default:
		return strings.ToLower(status)
	}
}

func formatOrderItems(items []domain.OrderItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s x%d @ Rp %.0f", item.Name, item.Quantity, item.UnitPrice))
	}
	return strings.Join(lines, "\n")
}
