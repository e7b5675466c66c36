package service

import (
	"context"
	"time"

	"github.com/shoplift/autopilot/internal/channel"
)

// OrderManager pulls recent orders through the channel.
type OrderManager struct {
	channel channel.Channel
}

// NewOrderManager creates a new order manager.
func NewOrderManager(ch channel.Channel) *OrderManager {
	return &OrderManager{channel: ch}
}

// SyncRecentOrders fetches orders from the trailing window.
func (m *OrderManager) SyncRecentOrders(ctx context.Context, window time.Duration) (*channel.Response, error) {
	end := time.Now().UnixMilli()
	start := end - window.Milliseconds()
	return m.channel.GetOrders(ctx, start, end)
}
