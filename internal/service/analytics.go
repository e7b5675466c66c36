package service

import (
	"math"

	"github.com/shoplift/autopilot/internal/channel"
)

// Pricing decisions produced by the sales analysis thresholds.
const (
	DecisionHold     = "hold current strategy"
	DecisionOptimize = "optimize title and hero image, consider a small price cut"
	DecisionRaise    = "test a 3-5% price increase and scale up promotion"
)

// SalesReport summarizes a window of orders.
type SalesReport struct {
	OrderCount  int     `json:"order_count"`
	GrossAmount float64 `json:"gross_amount"`
	Decision    string  `json:"decision"`
}

// AnalyticsService derives a pricing decision from recent order volume.
type AnalyticsService struct{}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

// AnalyzeSales aggregates an order-list response into a sales report.
// Fewer than 3 orders suggests optimizing the listing; more than 50
// suggests testing a price increase.
func (s *AnalyticsService) AnalyzeSales(res *channel.Response) *SalesReport {
	var orders []interface{}
	if res != nil && res.Data != nil {
		orders, _ = res.Data["orders"].([]interface{})
	}

	gross := 0.0
	for _, raw := range orders {
		order, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if amount, err := toFloat(order["pay_amount"]); err == nil {
			gross += amount
		}
	}

	decision := DecisionHold
	switch {
	case len(orders) < 3:
		decision = DecisionOptimize
	case len(orders) > 50:
		decision = DecisionRaise
	}

	return &SalesReport{
		OrderCount:  len(orders),
		GrossAmount: math.Round(gross*100) / 100,
		Decision:    decision,
	}
}
