package domain

// ProductCreate is the caller-supplied request to list a product.
type ProductCreate struct {
	Title     string   `json:"title" binding:"required"`
	CostPrice float64  `json:"cost_price" binding:"required"`
	SalePrice float64  `json:"sale_price" binding:"required"`
	Category  string   `json:"category" binding:"required"`
	Keywords  []string `json:"keywords"`
}

// ProductDraft is the generated promotional content for a product.
type ProductDraft struct {
	OptimizedTitle  string   `json:"optimized_title"`
	BulletPoints    []string `json:"bullet_points"`
	DetailCopy      string   `json:"detail_copy"`
	Tags            []string `json:"tags"`
	FAQ             []string `json:"faq"`
	RecommendedSKUs []string `json:"recommended_skus"`
}
