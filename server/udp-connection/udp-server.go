// Package udp_connection is the datagram link to the swarm: one
// broadcast-capable UDP socket bound to the well-known swarm port,
// with short-deadline receives so callers can poll.
package udp_connection

import (
	"context"
	"fmt"
	"net"
	"syscall"
	"time"
)

// pollTimeout bounds a single Receive so the receive loop can check
// its reset and cancellation gates between packets.
const pollTimeout = 100 * time.Millisecond

// Conn is a bound swarm socket. It is safe to Receive from one
// goroutine while another Broadcasts.
type Conn struct {
	sock      *net.UDPConn
	broadcast *net.UDPAddr
}

// Listen binds the swarm port on all interfaces with broadcast
// enabled.
func Listen(port int) (*Conn, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var serr error
			err := c.Control(func(fd uintptr) {
				serr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1)
			})
			if err != nil {
				return err
			}
			return serr
		},
	}
	pc, err := lc.ListenPacket(context.Background(), "udp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to bind UDP port %d: %w", port, err)
	}
	return &Conn{
		sock:      pc.(*net.UDPConn),
		broadcast: &net.UDPAddr{IP: net.IPv4bcast, Port: port},
	}, nil
}

// Receive reads one datagram into buf, waiting at most the poll
// timeout. An expired poll returns a timeout error the caller is
// expected to swallow.
func (c *Conn) Receive(buf []byte) (int, error) {
	if err := c.sock.SetReadDeadline(time.Now().Add(pollTimeout)); err != nil {
		return 0, err
	}
	n, _, err := c.sock.ReadFromUDP(buf)
	return n, err
}

// Broadcast sends payload to every node on the local network.
func (c *Conn) Broadcast(payload []byte) error {
	_, err := c.sock.WriteToUDP(payload, c.broadcast)
	return err
}

func (c *Conn) Close() error {
	return c.sock.Close()
}
