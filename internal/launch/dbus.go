package launch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// ApplicationInterface is the freedesktop application activation interface.
const ApplicationInterface = "org.freedesktop.Application"

// BusActivator activates applications through org.freedesktop.Application
// on the session bus.
type BusActivator struct {
	// Conn overrides the session bus connection, mainly for tests.
	Conn *dbus.Conn
}

// Activate calls org.freedesktop.Application.Activate on the bus name
// derived from the desktop ID.
func (b *BusActivator) Activate(ctx context.Context, app *model.Application) error {
	conn := b.Conn
	if conn == nil {
		var err error
		conn, err = dbus.SessionBus()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
	}

	busName := app.BaseID()
	obj := conn.Object(busName, ObjectPath(busName))
	call := obj.CallWithContext(ctx, ApplicationInterface+".Activate", 0, PlatformData())
	if call.Err != nil {
		return fmt.Errorf("activate %s: %w", busName, call.Err)
	}
	return nil
}

// ObjectPath derives the object path of a well-known bus name:
// org.gnome.Nautilus becomes /org/gnome/Nautilus and "-" maps to "_".
func ObjectPath(busName string) dbus.ObjectPath {
	p := "/" + strings.ReplaceAll(busName, ".", "/")
	return dbus.ObjectPath(strings.ReplaceAll(p, "-", "_"))
}

// PlatformData builds the platform_data argument, forwarding the activation
// token of the launching compositor when present.
func PlatformData() map[string]dbus.Variant {
	data := make(map[string]dbus.Variant)
	if token := os.Getenv("XDG_ACTIVATION_TOKEN"); token != "" {
		data["activation-token"] = dbus.MakeVariant(token)
	}
	if id := os.Getenv("DESKTOP_STARTUP_ID"); id != "" {
		data["desktop-startup-id"] = dbus.MakeVariant(id)
	}
	return data
}
