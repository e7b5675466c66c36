package channel

import "context"

// Response is the structured result every backend returns. The
// orchestrator only inspects Success and the item identifier inside
// Data; everything else is backend-specific context carried for audit.
type Response struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Mode    string                 `json:"mode,omitempty"`
	Action  string                 `json:"action,omitempty"`
	Status  string                 `json:"status,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ItemID extracts the created item identifier from the data payload,
// or an empty string when the backend returned none.
func (r *Response) ItemID() string {
	if r == nil || r.Data == nil {
		return ""
	}
	if id, ok := r.Data["item_id"].(string); ok {
		return id
	}
	return ""
}

// AsMap returns the response as a plain map for storing into a task
// output or a step artifact.
func (r *Response) AsMap() map[string]interface{} {
	if r == nil {
		return nil
	}
	m := map[string]interface{}{
		"success": r.Success,
	}
	if r.Data != nil {
		m["data"] = r.Data
	}
	if r.Mode != "" {
		m["mode"] = r.Mode
	}
	if r.Action != "" {
		m["action"] = r.Action
	}
	if r.Status != "" {
		m["status"] = r.Status
	}
	if r.Payload != nil {
		m["payload"] = r.Payload
	}
	return m
}

// Channel is the capability contract every execution backend implements,
// uniform across the automated API, on-device automation, and the
// human-queued browser workflow. Implementations may be slow (network
// round trips, device input, waiting on a human) and may fail; callers
// treat them as opaque beyond Success and the extracted item identifier.
type Channel interface {
	// Name returns the stable backend identifier.
	Name() string

	// CreateProduct creates a listing from the pack payload.
	CreateProduct(ctx context.Context, payload map[string]interface{}) (*Response, error)

	// UpdateProduct updates an existing listing.
	UpdateProduct(ctx context.Context, payload map[string]interface{}) (*Response, error)

	// SetProductOnline publishes the item identified by itemID.
	SetProductOnline(ctx context.Context, itemID string) (*Response, error)

	// SetProductOffline withdraws the item identified by itemID.
	SetProductOffline(ctx context.Context, itemID string) (*Response, error)

	// GetOrders lists orders in the [start, end] window (unix milliseconds).
	GetOrders(ctx context.Context, start, end int64) (*Response, error)

	// UpdateStock sets the stock quantity for one SKU of an item.
	UpdateStock(ctx context.Context, itemID, skuID string, qty int) (*Response, error)
}
