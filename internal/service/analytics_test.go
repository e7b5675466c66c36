package service

import (
	"testing"

	"github.com/shoplift/autopilot/internal/channel"
)

func ordersResponse(amounts ...float64) *channel.Response {
	orders := make([]interface{}, 0, len(amounts))
	for _, a := range amounts {
		orders = append(orders, map[string]interface{}{"pay_amount": a})
	}
	return &channel.Response{
		Success: true,
		Data:    map[string]interface{}{"orders": orders},
	}
}

func TestAnalyzeSales(t *testing.T) {
	svc := NewAnalyticsService()

	tests := []struct {
		name         string
		res          *channel.Response
		wantCount    int
		wantGross    float64
		wantDecision string
	}{
		{
			name:         "low volume suggests optimizing",
			res:          ordersResponse(20),
			wantCount:    1,
			wantGross:    20,
			wantDecision: DecisionOptimize,
		},
		{
			name:         "moderate volume holds",
			res:          ordersResponse(10.5, 20.25, 30),
			wantCount:    3,
			wantGross:    60.75,
			wantDecision: DecisionHold,
		},
		{
			name:         "no data",
			res:          &channel.Response{Success: true},
			wantCount:    0,
			wantGross:    0,
			wantDecision: DecisionOptimize,
		},
		{
			name:         "nil response",
			res:          nil,
			wantCount:    0,
			wantGross:    0,
			wantDecision: DecisionOptimize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := svc.AnalyzeSales(tt.res)
			if report.OrderCount != tt.wantCount {
				t.Errorf("expected %d orders, got %d", tt.wantCount, report.OrderCount)
			}
			if report.GrossAmount != tt.wantGross {
				t.Errorf("expected gross %v, got %v", tt.wantGross, report.GrossAmount)
			}
			if report.Decision != tt.wantDecision {
				t.Errorf("expected decision %q, got %q", tt.wantDecision, report.Decision)
			}
		})
	}
}

func TestAnalyzeSales_HighVolume(t *testing.T) {
	svc := NewAnalyticsService()

	amounts := make([]float64, 51)
	for i := range amounts {
		amounts[i] = 10
	}
	report := svc.AnalyzeSales(ordersResponse(amounts...))

	if report.Decision != DecisionRaise {
		t.Errorf("expected decision %q, got %q", DecisionRaise, report.Decision)
	}
	if report.GrossAmount != 510 {
		t.Errorf("expected gross 510, got %v", report.GrossAmount)
	}
}

func TestAnalyzeSales_StringAmounts(t *testing.T) {
	svc := NewAnalyticsService()

	res := &channel.Response{
		Success: true,
		Data: map[string]interface{}{
			"orders": []interface{}{
				map[string]interface{}{"pay_amount": "19.90"},
				map[string]interface{}{"pay_amount": 0.1},
			},
		},
	}
	report := svc.AnalyzeSales(res)

	if report.GrossAmount != 20 {
		t.Errorf("expected gross 20, got %v", report.GrossAmount)
	}
}
