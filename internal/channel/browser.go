package channel

import "context"

// StatusQueuedForManualConfirmation marks actions handed to a human
// operator through the browser assistant.
const StatusQueuedForManualConfirmation = "queued_for_manual_confirmation"

// BrowserChannel queues listing operations for a human-confirmed
// browser workflow. Every action succeeds immediately in the "queued"
// sense; the actual side effect happens when an operator works the
// queue. Combined with the executor's manual-confirmation gate this
// keeps a human in the loop for the final publish.
type BrowserChannel struct{}

// NewBrowserChannel creates a browser assistant channel.
func NewBrowserChannel() *BrowserChannel {
	return &BrowserChannel{}
}

// Name returns the stable backend identifier.
func (c *BrowserChannel) Name() string { return "browser_rpa" }

func (c *BrowserChannel) queued(action string, payload map[string]interface{}) *Response {
	return &Response{
		Success: true,
		Mode:    c.Name(),
		Action:  action,
		Status:  StatusQueuedForManualConfirmation,
		Payload: payload,
	}
}

// CreateProduct queues a listing creation for the operator.
func (c *BrowserChannel) CreateProduct(ctx context.Context, payload map[string]interface{}) (*Response, error) {
	return c.queued("create_product", payload), nil
}

// UpdateProduct queues a listing update for the operator.
func (c *BrowserChannel) UpdateProduct(ctx context.Context, payload map[string]interface{}) (*Response, error) {
	return c.queued("update_product", payload), nil
}

// SetProductOnline queues a publish action for the operator.
func (c *BrowserChannel) SetProductOnline(ctx context.Context, itemID string) (*Response, error) {
	return c.queued("set_product_online", map[string]interface{}{"item_id": itemID}), nil
}

// SetProductOffline queues a withdraw action for the operator.
func (c *BrowserChannel) SetProductOffline(ctx context.Context, itemID string) (*Response, error) {
	return c.queued("set_product_offline", map[string]interface{}{"item_id": itemID}), nil
}

// GetOrders queues an order export for the operator.
func (c *BrowserChannel) GetOrders(ctx context.Context, start, end int64) (*Response, error) {
	return c.queued("get_orders", map[string]interface{}{
		"start_time": start,
		"end_time":   end,
	}), nil
}

// UpdateStock queues a stock change for the operator.
func (c *BrowserChannel) UpdateStock(ctx context.Context, itemID, skuID string, qty int) (*Response, error) {
	return c.queued("update_stock", map[string]interface{}{
		"item_id": itemID,
		"sku_id":  skuID,
		"stock":   qty,
	}), nil
}
