package usbmon

import (
	"encoding/binary"
	"errors"
)

// Request type masks (USB 2.0 Table 9-2).
const (
	RequestTypeDirectionMask = 0x80 // set for device-to-host
	RequestTypeVendorBit     = 0x40 // vendor requests
)

// SetupPacketSize is the size of a USB SETUP packet in bytes.
const SetupPacketSize = 8

// ErrSetupPacketTooShort is returned when fewer than 8 setup bytes are given.
var ErrSetupPacketTooShort = errors.New("setup packet too short")

// SetupPacket represents an 8-byte USB SETUP packet.
type SetupPacket struct {
	RequestType uint8  // bmRequestType: direction, type, recipient
	Request     uint8  // bRequest
	Value       uint16 // wValue
	Index       uint16 // wIndex, the register offset for vendor requests
	Length      uint16 // wLength
}

// ParseSetupPacket parses a setup packet from 8 bytes into out.
func ParseSetupPacket(data []byte, out *SetupPacket) error {
	if len(data) < SetupPacketSize {
		return ErrSetupPacketTooShort
	}
	out.RequestType = data[0]
	out.Request = data[1]
	out.Value = binary.LittleEndian.Uint16(data[2:4])
	out.Index = binary.LittleEndian.Uint16(data[4:6])
	out.Length = binary.LittleEndian.Uint16(data[6:8])
	return nil
}

// MarshalTo serializes the setup packet to buf and returns the number of
// bytes written, 0 if buf is too short.
func (s *SetupPacket) MarshalTo(buf []byte) int {
	if len(buf) < SetupPacketSize {
		return 0
	}
	buf[0] = s.RequestType
	buf[1] = s.Request
	binary.LittleEndian.PutUint16(buf[2:4], s.Value)
	binary.LittleEndian.PutUint16(buf[4:6], s.Index)
	binary.LittleEndian.PutUint16(buf[6:8], s.Length)
	return SetupPacketSize
}

// IsDeviceToHost returns true for reads.
func (s *SetupPacket) IsDeviceToHost() bool {
	return s.RequestType&RequestTypeDirectionMask != 0
}

// IsVendor returns true if the vendor bit of the request type is set.
func (s *SetupPacket) IsVendor() bool {
	return s.RequestType&RequestTypeVendorBit != 0
}
