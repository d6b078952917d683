package services

import (
	"net"
	"time"
)

// DialGate reports network availability by attempting a short TCP dial
// against the catalog host. The synchronizer consults it before any
// network attempt so an offline device short-circuits to cached data.
type DialGate struct {
	addr    string
	timeout time.Duration
}

// NewDialGate creates a gate probing the given host:port address.
func NewDialGate(addr string) *DialGate {
	return &DialGate{
		addr:    addr,
		timeout: 2 * time.Second,
	}
}

// Online returns true if the probe address currently accepts connections.
func (g *DialGate) Online() bool {
	conn, err := net.DialTimeout("tcp", g.addr, g.timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
