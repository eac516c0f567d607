package usbmon

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"rt2x00dump/common"
)

var pcapngMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}

type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// CaptureSource reads events from a pcap or pcapng file recorded on a
// usbmon interface. Seq is the 1-based packet number in the file, so it
// matches the frame number shown by Wireshark.
type CaptureSource struct {
	Log common.Logger

	r      packetReader
	closer io.Closer
	hdrLen int
	seq    uint64
}

// OpenCapture opens a capture file.
func OpenCapture(path string) (*CaptureSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	s, err := NewCaptureSource(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.closer = f
	return s, nil
}

// NewCaptureSource reads a capture from r. The format (pcap or pcapng) is
// detected from the first bytes.
func NewCaptureSource(r io.Reader) (*CaptureSource, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		return nil, fmt.Errorf("read capture magic: %w", err)
	}

	var pr packetReader
	if bytes.Equal(magic, pcapngMagic) {
		pr, err = pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
	} else {
		pr, err = pcapgo.NewReader(br)
	}
	if err != nil {
		return nil, fmt.Errorf("read capture header: %w", err)
	}

	s := &CaptureSource{Log: common.NewNoOpLogger(), r: pr}
	switch pr.LinkType() {
	case LinkTypeUSBLinux:
		s.hdrLen = HeaderLen
	case LinkTypeUSBLinuxMmapped:
		s.hdrLen = MmappedHeaderLen
	default:
		return nil, fmt.Errorf("link type %d is not a usbmon capture", pr.LinkType())
	}
	return s, nil
}

// Next returns the next event. Packets that do not hold a valid usbmon
// record are logged and skipped.
func (s *CaptureSource) Next(ctx context.Context) (Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Event{}, err
		}
		data, _, err := s.r.ReadPacketData()
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, fmt.Errorf("read capture: %w", err)
		}
		s.seq++

		ev, err := decodeHeader(data, s.hdrLen)
		if errors.Is(err, errFiller) {
			continue
		}
		if err != nil {
			s.Log.Logf(common.SeverityWarning, "packet %d skipped: %v", s.seq, err)
			continue
		}
		ev.Seq = s.seq
		return ev, nil
	}
}

// Close closes the underlying file, if any.
func (s *CaptureSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
