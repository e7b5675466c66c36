package channel

import (
	"context"
	"strings"
	"testing"

	"github.com/shoplift/autopilot/internal/config"
)

func TestNew_ModeSelection(t *testing.T) {
	api := &config.OpenAPIConfig{Gateway: "https://gw.example.com", Version: "2.0"}

	tests := []struct {
		mode     string
		wantName string
	}{
		{ModeAutoAPI, "auto_api"},
		{ModeAutoDevice, "auto_device"},
		{ModeBrowserRPA, "browser_rpa"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			ch, err := New(&config.ChannelConfig{Mode: tt.mode, DeviceID: "test-device"}, api)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ch.Name() != tt.wantName {
				t.Errorf("expected backend %q, got %q", tt.wantName, ch.Name())
			}
		})
	}
}

func TestNew_UnknownMode(t *testing.T) {
	_, err := New(&config.ChannelConfig{Mode: "carrier_pigeon"}, &config.OpenAPIConfig{})
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestDeviceChannel_CreateProduct(t *testing.T) {
	ch := NewDeviceChannel("test-device", true)

	res, err := ch.CreateProduct(context.Background(), map[string]interface{}{"title": "Fan"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Error("expected success")
	}
	if !strings.HasPrefix(res.ItemID(), "auto_") {
		t.Errorf("expected generated item id, got %q", res.ItemID())
	}
	if res.Mode != "auto_device" {
		t.Errorf("unexpected mode %q", res.Mode)
	}
}

func TestBrowserChannel_QueuesActions(t *testing.T) {
	ch := NewBrowserChannel()

	res, err := ch.SetProductOnline(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Error("expected queued action to report success")
	}
	if res.Status != StatusQueuedForManualConfirmation {
		t.Errorf("expected status %q, got %q", StatusQueuedForManualConfirmation, res.Status)
	}
	if res.Payload["item_id"] != "item-1" {
		t.Errorf("unexpected payload: %v", res.Payload)
	}
	if res.ItemID() != "" {
		t.Error("browser channel does not report item ids")
	}
}

func TestResponse_ItemID(t *testing.T) {
	tests := []struct {
		name string
		res  *Response
		want string
	}{
		{"nil response", nil, ""},
		{"no data", &Response{Success: true}, ""},
		{"item id present", &Response{Success: true, Data: map[string]interface{}{"item_id": "x1"}}, "x1"},
		{"item id wrong type", &Response{Success: true, Data: map[string]interface{}{"item_id": 7}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.ItemID(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
