// Package usbmon models Linux usbmon events and reads them from capture
// files or from a live usbmon ring buffer.
package usbmon

import (
	"context"
	"fmt"
	"time"

	"rt2x00dump/common"
)

// EventKind tells submissions and completions apart.
type EventKind int

const (
	Submission EventKind = iota // 'S'
	Completion                  // 'C', or 'E' for an error callback
)

func (k EventKind) String() string {
	if k == Completion {
		return "C"
	}
	return "S"
}

// TransferType is the usbmon xfer_type byte.
type TransferType uint8

const (
	Isochronous TransferType = 0
	Interrupt   TransferType = 1
	Control     TransferType = 2
	Bulk        TransferType = 3
)

func (t TransferType) String() string {
	switch t {
	case Isochronous:
		return "iso"
	case Interrupt:
		return "intr"
	case Control:
		return "ctrl"
	case Bulk:
		return "bulk"
	default:
		return fmt.Sprintf("xfer%d", uint8(t))
	}
}

// EndpointDirIn is the direction bit of an endpoint address.
const EndpointDirIn = 0x80

// Event is one usbmon record. Events are immutable once returned by a
// Source.
type Event struct {
	Seq       uint64 // assigned by the source, increasing
	Kind      EventKind
	ID        uint64 // URB id, shared by a submission and its completion
	Type      TransferType
	Endpoint  uint8 // endpoint address, EndpointDirIn set for IN endpoints
	Bus       uint16
	Device    uint8
	Setup     *SetupPacket // control submissions only
	Data      []byte       // captured payload
	Length    uint32       // declared length, may exceed len(Data)
	Status    int32
	Timestamp time.Time
}

// EndpointNumber returns the endpoint number without the direction bit.
func (e *Event) EndpointNumber() uint8 {
	return e.Endpoint &^ EndpointDirIn
}

// In reports whether the endpoint is device-to-host.
func (e *Event) In() bool {
	return e.Endpoint&EndpointDirIn != 0
}

// Dir returns the endpoint direction as a read or write.
func (e *Event) Dir() common.Direction {
	if e.In() {
		return common.DirIn
	}
	return common.DirOut
}

// Source yields events in capture order. Next returns io.EOF once the
// source is exhausted.
type Source interface {
	Next(ctx context.Context) (Event, error)
	Close() error
}
