package service

import (
	"context"
	"time"

	"github.com/kuedapur/backend-go/internal/customer"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
	"github.com/kuedapur/backend-go/internal/whatsapp"
)

// CustomerWithSegment is a customer row annotated with its RFM segment for
// list views.
type CustomerWithSegment struct {
	domain.Customer
	Segment string `json:"segment"`
}

// CustomerInsights bundles everything the customer detail view shows.
type CustomerInsights struct {
	Customer domain.Customer          `json:"customer"`
	RFM      customer.RFMScore        `json:"rfm"`
	LTV      customer.LTVProjection   `json:"ltv"`
	Churn    customer.ChurnAssessment `json:"churn"`
}

type CustomerService struct {
	customers repository.CustomerRepository
	now       func() time.Time
}

func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{
		customers: customers,
		now:       time.Now,
	}
}

func (s *CustomerService) List(ctx context.Context, filter domain.ListFilter) ([]CustomerWithSegment, int, error) {
	customers, total, err := s.customers.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	out := make([]CustomerWithSegment, 0, len(customers))
	for i := range customers {
		score := customer.Score(&customers[i], now)
		out = append(out, CustomerWithSegment{
			Customer: customers[i],
			Segment:  score.Segment,
		})
	}

	return out, total, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// Create normalizes the phone number for WhatsApp before storing.
func (s *CustomerService) Create(ctx context.Context, c *domain.Customer) error {
	c.Phone = whatsapp.NormalizePhone(c.Phone)
	return s.customers.Create(ctx, c)
}

func (s *CustomerService) Update(ctx context.Context, c *domain.Customer) error {
	c.Phone = whatsapp.NormalizePhone(c.Phone)
	return s.customers.Update(ctx, c)
}

// Insights scores a customer's order history: RFM segment, projected
// lifetime value, and churn risk against their own ordering cadence.
func (s *CustomerService) Insights(ctx context.Context, id string) (*CustomerInsights, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &CustomerInsights{
		Customer: *c,
		RFM:      customer.Score(c, now),
		LTV:      customer.ProjectLTV(c, now),
		Churn:    customer.AssessChurn(c, now),
	}, nil
}

// AtRisk lists customers with medium or high churn risk.
func (s *CustomerService) AtRisk(ctx context.Context) ([]customer.ChurnAssessment, error) {
	customers, _, err := s.customers.List(ctx, domain.ListFilter{PageSize: dashboardPageSize})
	if err != nil {
		return nil, err
	}

	now := s.now()
	atRisk := make([]customer.ChurnAssessment, 0)
	for i := range customers {
		if customers[i].TotalOrders == 0 {
			continue
		}
		assessment := customer.AssessChurn(&customers[i], now)
		if assessment.RiskLevel == customer.RiskLow {
			continue
		}
		atRisk = append(atRisk, assessment)
	}

	return atRisk, nil
}
