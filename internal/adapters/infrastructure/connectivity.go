package infrastructure

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"forecast.app/internal/ports"
)

// DialConnectivityGate reports the network usable when a TCP connection to
// the probe address succeeds within the timeout. Every call probes afresh.
type DialConnectivityGate struct {
	addr    string
	timeout time.Duration
	dialer  func(ctx context.Context, network, addr string) (net.Conn, error)
	logger  ports.Logger
}

func NewDialConnectivityGate(addr string, timeout time.Duration, logger ports.Logger) *DialConnectivityGate {
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	d := &net.Dialer{}
	return &DialConnectivityGate{
		addr:    addr,
		timeout: timeout,
		dialer:  d.DialContext,
		logger:  logger,
	}
}

func (g *DialConnectivityGate) IsReachable(ctx context.Context) bool {
	if g.addr == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	conn, err := g.dialer(ctx, "tcp", g.addr)
	if err != nil {
		g.logger.Debug("Connectivity probe failed", ports.F("addr", g.addr), ports.F("error", err))
		return false
	}
	_ = conn.Close()
	return true
}

// StaticConnectivityGate answers with a fixed, switchable state. It backs
// the --offline flag.
type StaticConnectivityGate struct {
	online atomic.Bool
}

func NewStaticConnectivityGate(online bool) *StaticConnectivityGate {
	g := &StaticConnectivityGate{}
	g.online.Store(online)
	return g
}

func (g *StaticConnectivityGate) IsReachable(context.Context) bool {
	return g.online.Load()
}

func (g *StaticConnectivityGate) SetOnline(online bool) {
	g.online.Store(online)
}
