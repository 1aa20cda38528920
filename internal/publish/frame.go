// internal/publish/frame.go
package publish

import (
	"strconv"
	"time"

	"github.com/nizzatkr/pero/internal/control"
)

// Frame is one control update as delivered to the shared document the
// embedded controller polls.
type Frame struct {
	Command    control.Command
	SprayLeft  bool
	SprayRight bool
	At         time.Time
}

// Wire keys of the flat control record. Protocol-locked: the embedded
// controller reads these names verbatim.
const (
	KeyUp         = "up"
	KeyDown       = "down"
	KeyLeft       = "left"
	KeyRight      = "right"
	KeySprayLeft  = "spray_left"
	KeySprayRight = "spray_right"
	KeyTimestamp  = "timestamp"
)

// Encode serializes a frame into the flat wire record. Flags are the
// strings "1"/"0" at this boundary and nowhere else; the timestamp is
// unix milliseconds as a decimal string.
func Encode(f Frame) map[string]string {
	return map[string]string{
		KeyUp:         flag(f.Command == control.Up),
		KeyDown:       flag(f.Command == control.Down),
		KeyLeft:       flag(f.Command == control.Lefty),
		KeyRight:      flag(f.Command == control.Righty),
		KeySprayLeft:  flag(f.SprayLeft),
		KeySprayRight: flag(f.SprayRight),
		KeyTimestamp:  strconv.FormatInt(f.At.UnixMilli(), 10),
	}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
