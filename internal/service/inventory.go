package service

import (
	"context"

	"github.com/shoplift/autopilot/internal/channel"
)

// InventoryManager pushes stock corrections through the channel.
type InventoryManager struct {
	channel channel.Channel
}

// NewInventoryManager creates a new inventory manager.
func NewInventoryManager(ch channel.Channel) *InventoryManager {
	return &InventoryManager{channel: ch}
}

// SyncStock sets the stock quantity for one SKU of an item.
func (m *InventoryManager) SyncStock(ctx context.Context, itemID, skuID string, qty int) (*channel.Response, error) {
	return m.channel.UpdateStock(ctx, itemID, skuID, qty)
}
