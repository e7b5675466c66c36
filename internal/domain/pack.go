package domain

// PackVersion is the format tag for the current listing pack shape.
const PackVersion = "v1"

// ListingPack is an immutable, versioned snapshot of listing content
// ready to hand to a channel. Built once per task, never mutated.
type ListingPack struct {
	ProductID string      `json:"product_id"`
	Title     string      `json:"title"`
	Desc      string      `json:"desc"`
	Tags      StringArray `json:"tags"`
	SalePrice float64     `json:"sale_price"`
	CostPrice float64     `json:"cost_price"`
	SKUList   SKUList     `json:"sku_list"`
	Images    StringArray `json:"images"`
	Checklist StringArray `json:"checklist"`
	Version   string      `json:"version"`
}

// Snapshot returns the pack as a plain map suitable for persisting
// verbatim into a task record and for handing to a channel.
func (p *ListingPack) Snapshot() JSONMap {
	return JSONMap{
		"product_id": p.ProductID,
		"title":      p.Title,
		"desc":       p.Desc,
		"tags":       []string(p.Tags),
		"sale_price": p.SalePrice,
		"cost_price": p.CostPrice,
		"sku_list":   []map[string]interface{}(p.SKUList),
		"images":     []string(p.Images),
		"checklist":  []string(p.Checklist),
		"version":    p.Version,
	}
}
