package service

import (
	"fmt"

	"github.com/shoplift/autopilot/internal/domain"
)

// ContentGenerator produces promotional listing content from a product
// request. It is a deterministic template fill; swapping in an LLM-backed
// generator only requires honoring the same method signature.
type ContentGenerator struct{}

// NewContentGenerator creates a content generator.
func NewContentGenerator() *ContentGenerator {
	return &ContentGenerator{}
}

// GenerateProductContent fills the promotional template for a product.
func (g *ContentGenerator) GenerateProductContent(product *domain.ProductCreate) *domain.ProductDraft {
	baseTitle := fmt.Sprintf("%s | %s", product.Category, product.Title)

	return &domain.ProductDraft{
		OptimizedTitle: baseTitle + " | conversion-optimized",
		BulletPoints: []string{
			"Premium materials, durable and easy to maintain",
			"Built for the target audience with the core use case front and center",
			fmt.Sprintf("Cost %.2f, suggested sale price %.2f", product.CostPrice, product.SalePrice),
		},
		DetailCopy: fmt.Sprintf(
			"Built for the %s scenario, this product leads with value for money and consistent quality.",
			product.Category),
		Tags: dedupe(append(append([]string{}, product.Keywords...), product.Category, "great value")),
		FAQ: []string{
			"Q: Shipping time? A: Dispatched within 24 hours by default.",
			"Q: Returns? A: 7-day no-questions-asked returns.",
		},
		RecommendedSKUs: []string{"Standard", "Upgraded"},
	}
}

// dedupe removes duplicates while preserving first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
