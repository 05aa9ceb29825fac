package net

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_sketchboard._tcp"

// Service is a share host found on the local network.
type Service struct {
	Name string
	Addr string
}

// Advertise announces a share hub on the local network until the returned
// server is shut down.
func Advertise(name string, port int) (*mdns.Server, error) {
	var ips []net.IP
	if ip, err := GetOutgoingIP(); err == nil {
		ips = append(ips, net.ParseIP(ip))
	}

	service, err := mdns.NewMDNSService(
		name,
		serviceType,
		"",
		"",
		port,
		ips,
		[]string{"SketchBoard", "path=" + SharePath},
	)
	if err != nil {
		return nil, fmt.Errorf("create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for share hosts for up to timeout and calls found for each.
func Browse(ctx context.Context, timeout time.Duration, found func(Service)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(Service{
				Name: instanceName(e.Name),
				Addr: net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)),
			})
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		params.Timeout = time.Until(deadline)
	}

	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mDNS browse: %w", err)
	}
	return nil
}

// instanceName strips the service suffix from a full mDNS name.
func instanceName(full string) string {
	if i := strings.Index(full, "."+serviceType); i > 0 {
		return strings.ReplaceAll(full[:i], `\ `, " ")
	}
	return full
}
