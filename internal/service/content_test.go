package service

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shoplift/autopilot/internal/domain"
)

func TestGenerateProductContent(t *testing.T) {
	gen := NewContentGenerator()

	product := &domain.ProductCreate{
		Title:     "Portable Fan",
		CostPrice: 19.9,
		SalePrice: 39.9,
		Category:  "Gadgets",
		Keywords:  []string{"quiet", "battery", "quiet"},
	}
	draft := gen.GenerateProductContent(product)

	if !strings.Contains(draft.OptimizedTitle, "Portable Fan") {
		t.Errorf("title should contain the product title, got %q", draft.OptimizedTitle)
	}
	if !strings.Contains(draft.OptimizedTitle, "Gadgets") {
		t.Errorf("title should contain the category, got %q", draft.OptimizedTitle)
	}
	if len(draft.RecommendedSKUs) == 0 {
		t.Error("expected at least one recommended SKU")
	}
	if len(draft.BulletPoints) != 3 {
		t.Errorf("expected 3 bullet points, got %d", len(draft.BulletPoints))
	}

	// Keywords are deduplicated and keep their order, category appended.
	wantTags := []string{"quiet", "battery", "Gadgets", "great value"}
	if !reflect.DeepEqual(draft.Tags, wantTags) {
		t.Errorf("expected tags %v, got %v", wantTags, draft.Tags)
	}

	// Template fill is deterministic.
	again := gen.GenerateProductContent(product)
	if !reflect.DeepEqual(draft, again) {
		t.Error("expected identical drafts for identical input")
	}
}
