// Package usbmontest builds usbmon capture files for tests.
package usbmontest

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"rt2x00dump/usbmon"
)

// Marshal encodes ev as a binary usbmon record with a header of hdrLen
// bytes (usbmon.HeaderLen or usbmon.MmappedHeaderLen).
func Marshal(ev *usbmon.Event, hdrLen int) []byte {
	buf := make([]byte, hdrLen+len(ev.Data))
	binary.LittleEndian.PutUint64(buf[0:8], ev.ID)
	switch {
	case ev.Kind == usbmon.Submission:
		buf[8] = byte(layers.USBEventTypeSubmit)
	case ev.Status != 0:
		buf[8] = byte(layers.USBEventTypeError)
	default:
		buf[8] = byte(layers.USBEventTypeComplete)
	}
	buf[9] = byte(ev.Type)
	buf[10] = ev.Endpoint
	buf[11] = ev.Device
	binary.LittleEndian.PutUint16(buf[12:14], ev.Bus)
	buf[14] = '-'
	if ev.Setup != nil {
		buf[14] = 0
		ev.Setup.MarshalTo(buf[40:48])
	}
	buf[15] = '<'
	if len(ev.Data) > 0 {
		buf[15] = 0
	}
	binary.LittleEndian.PutUint64(buf[16:24], uint64(ev.Timestamp.Unix()))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(ev.Timestamp.Nanosecond()/1000))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(ev.Status))
	binary.LittleEndian.PutUint32(buf[32:36], ev.Length)
	binary.LittleEndian.PutUint32(buf[36:40], uint32(len(ev.Data)))
	copy(buf[hdrLen:], ev.Data)
	return buf
}

// WriteCapture writes events as a pcap file with the given usbmon link type.
func WriteCapture(w io.Writer, linkType layers.LinkType, events []usbmon.Event) error {
	hdrLen := usbmon.HeaderLen
	if linkType == usbmon.LinkTypeUSBLinuxMmapped {
		hdrLen = usbmon.MmappedHeaderLen
	}

	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(65535, linkType); err != nil {
		return fmt.Errorf("write pcap header: %w", err)
	}
	for i := range events {
		data := Marshal(&events[i], hdrLen)
		ci := gopacket.CaptureInfo{
			Timestamp:     events[i].Timestamp,
			CaptureLength: len(data),
			Length:        len(data),
		}
		if err := pw.WritePacket(ci, data); err != nil {
			return fmt.Errorf("write packet %d: %w", i, err)
		}
	}
	return nil
}

// Submit returns a submission event.
func Submit(id uint64, typ usbmon.TransferType, ep uint8, setup *usbmon.SetupPacket, data []byte) usbmon.Event {
	return usbmon.Event{
		Kind:     usbmon.Submission,
		ID:       id,
		Type:     typ,
		Endpoint: ep,
		Bus:      1,
		Device:   2,
		Setup:    setup,
		Data:     data,
		Length:   uint32(len(data)),
	}
}

// Complete returns a completion event.
func Complete(id uint64, typ usbmon.TransferType, ep uint8, data []byte) usbmon.Event {
	return usbmon.Event{
		Kind:     usbmon.Completion,
		ID:       id,
		Type:     typ,
		Endpoint: ep,
		Bus:      1,
		Device:   2,
		Data:     data,
		Length:   uint32(len(data)),
	}
}

// VendorRead returns the submission and completion of a vendor control
// read of len(data) bytes at index.
func VendorRead(id uint64, index uint16, data []byte) []usbmon.Event {
	setup := &usbmon.SetupPacket{RequestType: 0xc0, Request: 0x07, Index: index, Length: uint16(len(data))}
	return []usbmon.Event{
		Submit(id, usbmon.Control, usbmon.EndpointDirIn, setup, nil),
		Complete(id, usbmon.Control, usbmon.EndpointDirIn, data),
	}
}

// VendorWrite returns the submission and completion of a vendor control
// write of data at index. With no data the value travels in wValue.
func VendorWrite(id uint64, index, value uint16, data []byte) []usbmon.Event {
	setup := &usbmon.SetupPacket{RequestType: 0x40, Request: 0x02, Value: value, Index: index, Length: uint16(len(data))}
	return []usbmon.Event{
		Submit(id, usbmon.Control, 0, setup, data),
		Complete(id, usbmon.Control, 0, nil),
	}
}

// Word encodes a 32-bit little-endian register value.
func Word(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}
