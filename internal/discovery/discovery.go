// Package discovery bridges mDNS service browsing for
// "_googlecast._tcp.local." into a simple Go channel of resolved devices,
// the role mdns-sd plays for the original implementation (see
// _examples/original_source/src/discovery.rs). Only the interface is
// contracted here; mDNS browsing mechanics are an external collaborator
// per spec.md's scope.
package discovery

import (
	"context"
	"net"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/rs/zerolog/log"
)

const serviceType = "_googlecast._tcp"
const domain = "local."

// Device is a resolved Cast device on the local network.
type Device struct {
	IP           net.IP
	Port         int
	FriendlyName string
	ModelName    string
	UUID         string
}

// Discover blocks for timeout, browsing for Cast devices, and returns every
// device resolved during that window.
func Discover(ctx context.Context, timeout time.Duration) ([]Device, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, err
	}

	entries := make(chan *zeroconf.ServiceEntry, 16)
	var devices []Device
	done := make(chan struct{})

	go func() {
		defer close(done)
		for entry := range entries {
			devices = append(devices, entryToDevice(entry))
		}
	}()

	browseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := resolver.Browse(browseCtx, serviceType, domain, entries); err != nil {
		return nil, err
	}

	<-browseCtx.Done()
	close(entries)
	<-done

	return devices, nil
}

// DiscoverAsync streams resolved devices as they are found; the caller
// cancels ctx to stop browsing.
func DiscoverAsync(ctx context.Context) (<-chan Device, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, err
	}

	entries := make(chan *zeroconf.ServiceEntry, 16)
	out := make(chan Device, 16)

	go func() {
		defer close(out)
		for entry := range entries {
			select {
			case out <- entryToDevice(entry):
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, serviceType, domain, entries); err != nil {
		log.Warn().Err(err).Msg("mDNS browse failed")
		close(out)
		return out, err
	}

	return out, nil
}

func entryToDevice(entry *zeroconf.ServiceEntry) Device {
	d := Device{
		Port: entry.Port,
		UUID: firstTXT(entry.Text, "id"),
	}
	d.FriendlyName = firstTXT(entry.Text, "fn")
	if d.FriendlyName == "" {
		d.FriendlyName = entry.Instance
	}
	d.ModelName = firstTXT(entry.Text, "md")

	if len(entry.AddrIPv4) > 0 {
		d.IP = entry.AddrIPv4[0]
	} else if len(entry.AddrIPv6) > 0 {
		d.IP = entry.AddrIPv6[0]
	}
	return d
}

func firstTXT(records []string, key string) string {
	prefix := key + "="
	for _, r := range records {
		if len(r) > len(prefix) && r[:len(prefix)] == prefix {
			return r[len(prefix):]
		}
	}
	return ""
}
