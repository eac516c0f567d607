package usbmon

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Header sizes of the two usbmon binary formats.
const (
	HeaderLen        = 48 // DLT_USB_LINUX
	MmappedHeaderLen = 64 // DLT_USB_LINUX_MMAPPED, also the mmap ring format
)

// Link types of usbmon captures. gopacket names 220 LinkTypeLinuxUSB and
// has no constant for 189.
const (
	LinkTypeUSBLinux        layers.LinkType = 189
	LinkTypeUSBLinuxMmapped                 = layers.LinkTypeLinuxUSB
)

const fillerType = '@'

var errFiller = errors.New("usbmon filler event")

// decodeHeader decodes one binary usbmon record, header followed by the
// captured payload. The payload is copied.
func decodeHeader(data []byte, hdrLen int) (Event, error) {
	if len(data) < hdrLen {
		return Event{}, fmt.Errorf("usbmon header truncated: %d bytes, want %d", len(data), hdrLen)
	}
	if data[8] == fillerType {
		return Event{}, errFiller
	}
	capLen := binary.LittleEndian.Uint32(data[36:40])
	if uint64(capLen) > uint64(len(data)-hdrLen) {
		return Event{}, fmt.Errorf("usbmon captured length %d exceeds %d payload bytes", capLen, len(data)-hdrLen)
	}

	var u layers.USB
	if err := u.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return Event{}, fmt.Errorf("decode usbmon header: %w", err)
	}

	ev := Event{
		ID:        u.ID,
		Type:      TransferType(u.TransferType),
		Endpoint:  u.EndpointNumber,
		Bus:       u.BusID,
		Device:    u.DeviceAddress,
		Length:    u.UrbLength,
		Status:    u.Status,
		Timestamp: time.Unix(u.TimestampSec, int64(u.TimestampUsec)*int64(time.Microsecond)),
	}
	if u.Direction == layers.USBDirectionTypeIn {
		ev.Endpoint |= EndpointDirIn
	}

	switch u.EventType {
	case layers.USBEventTypeSubmit:
		ev.Kind = Submission
	case layers.USBEventTypeComplete, layers.USBEventTypeError:
		ev.Kind = Completion
	default:
		return Event{}, fmt.Errorf("unknown usbmon event type %q", byte(u.EventType))
	}

	if u.Setup && ev.Kind == Submission {
		var sp SetupPacket
		if err := ParseSetupPacket(data[40:48], &sp); err != nil {
			return Event{}, err
		}
		ev.Setup = &sp
	}
	if capLen > 0 {
		ev.Data = make([]byte, capLen)
		copy(ev.Data, data[hdrLen:hdrLen+int(capLen)])
	}
	return ev, nil
}
