package tcpserver

import (
	"net"
	"sync"
)

// clientConn wraps an accepted socket with a stable id and a write lock.
// Frames are written with a single Write call under the lock so concurrent
// broadcasts never interleave bytes on the wire.
type clientConn struct {
	id string
	nc net.Conn

	writeMu sync.Mutex
}

func (c *clientConn) ID() string {
	return c.id
}

func (c *clientConn) WriteFrame(frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := c.nc.Write(frame)
	return err
}

func (c *clientConn) Close() error {
	return c.nc.Close()
}
