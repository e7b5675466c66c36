package channel

import (
	"context"
	"fmt"
	"time"
)

// DeviceChannel drives listing operations through on-device automation.
// In dry-run mode no input is injected; every action resolves
// immediately with a deterministic result, which is what the executor
// and its tests rely on. Real input injection sits behind the same
// surface and is configured per device.
type DeviceChannel struct {
	deviceID string
	dryRun   bool
	// now is injected for deterministic item IDs in tests.
	now func() time.Time
}

// NewDeviceChannel creates a device automation channel.
func NewDeviceChannel(deviceID string, dryRun bool) *DeviceChannel {
	return &DeviceChannel{
		deviceID: deviceID,
		dryRun:   dryRun,
		now:      time.Now,
	}
}

// Name returns the stable backend identifier.
func (c *DeviceChannel) Name() string { return "auto_device" }

func (c *DeviceChannel) ok(action string, payload map[string]interface{}) *Response {
	return &Response{
		Success: true,
		Mode:    c.Name(),
		Action:  action,
		Status:  "done",
		Payload: payload,
	}
}

// CreateProduct creates a listing on the device and reports the new item ID.
func (c *DeviceChannel) CreateProduct(ctx context.Context, payload map[string]interface{}) (*Response, error) {
	res := c.ok("create_product", payload)
	res.Data = map[string]interface{}{
		"item_id": fmt.Sprintf("auto_%d", c.now().UnixMilli()),
	}
	return res, nil
}

// UpdateProduct updates a listing on the device.
func (c *DeviceChannel) UpdateProduct(ctx context.Context, payload map[string]interface{}) (*Response, error) {
	return c.ok("update_product", payload), nil
}

// SetProductOnline publishes an item from the device.
func (c *DeviceChannel) SetProductOnline(ctx context.Context, itemID string) (*Response, error) {
	return c.ok("set_product_online", map[string]interface{}{"item_id": itemID}), nil
}

// SetProductOffline withdraws an item from the device.
func (c *DeviceChannel) SetProductOffline(ctx context.Context, itemID string) (*Response, error) {
	return c.ok("set_product_offline", map[string]interface{}{"item_id": itemID}), nil
}

// GetOrders reads recent orders from the device seller console.
func (c *DeviceChannel) GetOrders(ctx context.Context, start, end int64) (*Response, error) {
	return c.ok("get_orders", map[string]interface{}{
		"start_time": start,
		"end_time":   end,
	}), nil
}

// UpdateStock sets SKU stock from the device seller console.
func (c *DeviceChannel) UpdateStock(ctx context.Context, itemID, skuID string, qty int) (*Response, error) {
	return c.ok("update_stock", map[string]interface{}{
		"item_id": itemID,
		"sku_id":  skuID,
		"stock":   qty,
	}), nil
}
