// internal/publish/modbus/client.go
package modbus

import (
	"errors"
	"time"

	gomodbus "github.com/goburrow/modbus"
)

// Client writes coils to the embedded controller over Modbus TCP.
// This adapter is geometry-only: it packs bits and sends one request.
type Client struct {
	handler *gomodbus.TCPClientHandler
	cli     gomodbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	UnitID   byte
	Timeout  time.Duration
}

// New creates a connected Modbus TCP client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus client: endpoint required")
	}

	h := gomodbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Client{
		handler: h,
		cli:     gomodbus.NewClient(h),
	}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// WriteCoils packs bits LSB-first and writes them in one request.
func (c *Client) WriteCoils(addr uint16, bits []bool) error {
	if len(bits) == 0 {
		return nil
	}

	buf := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			buf[i/8] |= 1 << (i % 8)
		}
	}

	_, err := c.cli.WriteMultipleCoils(addr, uint16(len(bits)), buf)
	return err
}
