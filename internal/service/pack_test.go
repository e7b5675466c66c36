package service

import (
	"testing"

	"github.com/shoplift/autopilot/internal/domain"
)

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":      "Portable Fan",
		"desc":       "Quiet and compact",
		"sale_price": 39.9,
		"cost_price": 19.9,
		"tags":       []interface{}{"quiet", "portable"},
		"sku_list":   []interface{}{map[string]interface{}{"name": "Std", "stock": 100}},
		"images":     []interface{}{"https://cdn.example.com/fan.jpg"},
	}
}

func TestBuildPack_Valid(t *testing.T) {
	pack, err := BuildPack("prod-1", validPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pack.Version != domain.PackVersion {
		t.Errorf("expected version %q, got %q", domain.PackVersion, pack.Version)
	}
	if len(pack.Checklist) == 0 {
		t.Error("expected non-empty checklist")
	}
	if pack.Title != "Portable Fan" {
		t.Errorf("unexpected title %q", pack.Title)
	}
	if pack.SalePrice != 39.9 || pack.CostPrice != 19.9 {
		t.Errorf("unexpected prices: sale=%v cost=%v", pack.SalePrice, pack.CostPrice)
	}
	if len(pack.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(pack.Tags))
	}
	if len(pack.SKUList) != 1 || pack.SKUList[0]["name"] != "Std" {
		t.Errorf("unexpected sku list: %v", pack.SKUList)
	}
}

func TestBuildPack_NumericStrings(t *testing.T) {
	payload := validPayload()
	payload["sale_price"] = "39.9"
	payload["cost_price"] = "19.9"

	pack, err := BuildPack("prod-1", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.SalePrice != 39.9 {
		t.Errorf("expected sale price 39.9, got %v", pack.SalePrice)
	}
}

func TestBuildPack_OptionalFieldsOmitted(t *testing.T) {
	pack, err := BuildPack("prod-1", map[string]interface{}{
		"title":      "Portable Fan",
		"desc":       "Quiet and compact",
		"sale_price": 39.9,
		"cost_price": 19.9,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.Tags == nil || pack.SKUList == nil || pack.Images == nil {
		t.Error("optional fields should default to empty, not nil")
	}
}

func TestBuildPack_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing title", func(p map[string]interface{}) { delete(p, "title") }},
		{"empty title", func(p map[string]interface{}) { p["title"] = "" }},
		{"missing desc", func(p map[string]interface{}) { delete(p, "desc") }},
		{"missing sale_price", func(p map[string]interface{}) { delete(p, "sale_price") }},
		{"missing cost_price", func(p map[string]interface{}) { delete(p, "cost_price") }},
		{"non-numeric sale_price", func(p map[string]interface{}) { p["sale_price"] = "cheap" }},
		{"negative cost_price", func(p map[string]interface{}) { p["cost_price"] = -1.0 }},
		{"title wrong type", func(p map[string]interface{}) { p["title"] = 42 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			tt.mutate(payload)

			_, err := BuildPack("prod-1", payload)
			if err == nil {
				t.Fatal("expected error")
			}
			if !domain.IsValidationError(err) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}
