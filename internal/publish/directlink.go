// internal/publish/directlink.go
package publish

import (
	"context"

	"github.com/nizzatkr/pero/internal/control"
)

// coilClient is the exact contract the direct link uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type coilClient interface {
	WriteCoils(addr uint16, bits []bool) error
}

// Coil layout, base-relative. Protocol-locked: these offsets define the
// controller-side mapping and MUST NOT be configurable.
const (
	coilUp = iota
	coilDown
	coilLeft
	coilRight
	coilSprayLeft
	coilSprayRight

	coilCount
)

// DirectLinkSink mirrors the flat control record onto the embedded
// controller's coils, for installations with a direct Modbus TCP path
// to the vehicle. Optional; the document sink stays primary.
type DirectLinkSink struct {
	cli  coilClient
	base uint16
}

// NewDirectLinkSink creates the sink over a connected coil client.
func NewDirectLinkSink(cli coilClient, base uint16) *DirectLinkSink {
	return &DirectLinkSink{cli: cli, base: base}
}

func (s *DirectLinkSink) Name() string { return "direct-link" }

// Publish writes all six coils in one request.
func (s *DirectLinkSink) Publish(_ context.Context, f Frame) error {
	var bits [coilCount]bool
	bits[coilUp] = f.Command == control.Up
	bits[coilDown] = f.Command == control.Down
	bits[coilLeft] = f.Command == control.Lefty
	bits[coilRight] = f.Command == control.Righty
	bits[coilSprayLeft] = f.SprayLeft
	bits[coilSprayRight] = f.SprayRight

	return s.cli.WriteCoils(s.base, bits[:])
}
