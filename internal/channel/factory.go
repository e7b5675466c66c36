package channel

import (
	"fmt"

	"github.com/shoplift/autopilot/internal/config"
)

// Operation modes selecting an execution backend at wiring time.
const (
	ModeAutoAPI    = "auto_api"
	ModeAutoDevice = "auto_device"
	ModeBrowserRPA = "browser_rpa"
)

// New selects the execution backend for the configured operation mode.
// The set of backends is closed; selection happens once at process
// wiring time.
func New(cfg *config.ChannelConfig, api *config.OpenAPIConfig) (Channel, error) {
	switch cfg.Mode {
	case ModeAutoAPI:
		return NewOpenAPIChannel(api), nil
	case ModeAutoDevice:
		return NewDeviceChannel(cfg.DeviceID, cfg.DryRun), nil
	case ModeBrowserRPA:
		return NewBrowserChannel(), nil
	default:
		return nil, fmt.Errorf("unknown channel mode %q", cfg.Mode)
	}
}
