package channel

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shoplift/autopilot/internal/config"
)

// Platform gateway method names.
const (
	methodItemCreate      = "item.create"
	methodItemUpdate      = "item.update"
	methodItemOnShelf     = "item.on_shelf"
	methodItemOffShelf    = "item.off_shelf"
	methodOrderList       = "order.list"
	methodItemStockUpdate = "item.stock.update"
	methodOAuthToken      = "oauth.token"
	methodOAuthRefresh    = "oauth.refresh"
)

// OpenAPIChannel talks to the commerce platform's open-API gateway.
// Every call goes through a single common controller endpoint with an
// MD5-signed request envelope.
type OpenAPIChannel struct {
	client    *resty.Client
	gateway   string
	appID     string
	appSecret string
	version   string
}

// NewOpenAPIChannel creates a gateway client from configuration.
func NewOpenAPIChannel(cfg *config.OpenAPIConfig) *OpenAPIChannel {
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	client.SetTimeout(time.Duration(timeout) * time.Second)

	return &OpenAPIChannel{
		client:    client,
		gateway:   cfg.Gateway,
		appID:     cfg.AppID,
		appSecret: cfg.AppSecret,
		version:   cfg.Version,
	}
}

// Name returns the stable backend identifier.
func (c *OpenAPIChannel) Name() string { return "auto_api" }

// sign computes the gateway request signature for a method at a timestamp.
func (c *OpenAPIChannel) sign(method string, timestamp int64) string {
	raw := fmt.Sprintf("%s?appId=%s&timestamp=%d&version=%s%s",
		method, c.appID, timestamp, c.version, c.appSecret)
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// call posts one signed request envelope to the common controller.
func (c *OpenAPIChannel) call(ctx context.Context, method string, params map[string]interface{}) (*Response, error) {
	timestamp := time.Now().UnixMilli()

	body := map[string]interface{}{
		"appId":     c.appID,
		"timestamp": timestamp,
		"version":   c.version,
		"sign":      c.sign(method, timestamp),
	}
	for k, v := range params {
		body[k] = v
	}

	var out Response
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"method": method, "params": body}).
		SetResult(&out).
		Post(c.gateway)
	if err != nil {
		return nil, fmt.Errorf("openapi %s: %w", method, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("openapi %s: gateway returned %s", method, resp.Status())
	}
	out.Mode = c.Name()
	out.Action = method
	return &out, nil
}

// GetAccessToken exchanges an authorization code for an access token.
func (c *OpenAPIChannel) GetAccessToken(ctx context.Context, code string) (*Response, error) {
	return c.call(ctx, methodOAuthToken, map[string]interface{}{"code": code})
}

// RefreshToken refreshes an access token.
func (c *OpenAPIChannel) RefreshToken(ctx context.Context, refreshToken string) (*Response, error) {
	return c.call(ctx, methodOAuthRefresh, map[string]interface{}{"refresh_token": refreshToken})
}

// CreateProduct creates a listing from the pack payload.
func (c *OpenAPIChannel) CreateProduct(ctx context.Context, payload map[string]interface{}) (*Response, error) {
	return c.call(ctx, methodItemCreate, payload)
}

// UpdateProduct updates an existing listing.
func (c *OpenAPIChannel) UpdateProduct(ctx context.Context, payload map[string]interface{}) (*Response, error) {
	return c.call(ctx, methodItemUpdate, payload)
}

// SetProductOnline publishes an item.
func (c *OpenAPIChannel) SetProductOnline(ctx context.Context, itemID string) (*Response, error) {
	return c.call(ctx, methodItemOnShelf, map[string]interface{}{"item_id": itemID})
}

// SetProductOffline withdraws an item.
func (c *OpenAPIChannel) SetProductOffline(ctx context.Context, itemID string) (*Response, error) {
	return c.call(ctx, methodItemOffShelf, map[string]interface{}{"item_id": itemID})
}

// GetOrders lists orders in the given unix-millisecond window.
func (c *OpenAPIChannel) GetOrders(ctx context.Context, start, end int64) (*Response, error) {
	return c.call(ctx, methodOrderList, map[string]interface{}{
		"start_time": start,
		"end_time":   end,
	})
}

// UpdateStock sets the stock quantity for one SKU of an item.
func (c *OpenAPIChannel) UpdateStock(ctx context.Context, itemID, skuID string, qty int) (*Response, error) {
	return c.call(ctx, methodItemStockUpdate, map[string]interface{}{
		"item_id": itemID,
		"sku_id":  skuID,
		"stock":   qty,
	})
}
