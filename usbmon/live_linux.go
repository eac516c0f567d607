//go:build linux

package usbmon

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"

	"rt2x00dump/common"
)

const devicePrefix = "/dev/usbmon"

// maxFetch is the number of events fetched per MON_IOCX_MFETCH call.
const maxFetch = 32

type mfetchArg struct {
	offvec *uint32
	nfetch uint32
	nflush uint32
}

const (
	monIOCMagic      = 0x92
	monIOCQRingSize  = monIOCMagic<<8 | 5
	monIOCHMFlush    = monIOCMagic<<8 | 8
	monIOCXMFetch    = 3<<30 | uint(unsafe.Sizeof(mfetchArg{}))<<16 | monIOCMagic<<8 | 7
	pollTimeoutMilli = 250
)

// LiveSource reads events from the binary mmap interface of a usbmon bus
// device. Filler records are skipped.
type LiveSource struct {
	Log common.Logger

	fd      int
	ring    []byte
	vec     [maxFetch]uint32
	arg     mfetchArg
	pending []uint32
	nflush  uint32
	seq     uint64
}

// OpenLive opens /dev/usbmon<bus> and maps its ring buffer. Bus 0 captures
// all buses.
func OpenLive(bus int) (*LiveSource, error) {
	path := fmt.Sprintf("%s%d", devicePrefix, bus)
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	size, err := unix.IoctlRetInt(fd, monIOCQRingSize)
	if err != nil || size <= 0 {
		unix.Close(fd)
		if err == nil {
			err = fmt.Errorf("ring size %d", size)
		}
		return nil, fmt.Errorf("determine usbmon buffer size: %w", err)
	}

	ring, err := unix.Mmap(fd, 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}

	return &LiveSource{Log: common.NewNoOpLogger(), fd: fd, ring: ring}, nil
}

// Next returns the next event, blocking until one is available or ctx is
// done.
func (s *LiveSource) Next(ctx context.Context) (Event, error) {
	for {
		for len(s.pending) > 0 {
			off := s.pending[0]
			s.pending = s.pending[1:]

			ev, err := s.eventAt(off)
			if errors.Is(err, errFiller) {
				continue
			}
			s.seq++
			if err != nil {
				s.Log.Logf(common.SeverityWarning, "usbmon event %d skipped: %v", s.seq, err)
				continue
			}
			ev.Seq = s.seq
			return ev, nil
		}

		if err := s.fetch(ctx); err != nil {
			return Event{}, err
		}
	}
}

// fetch releases the previously fetched events and waits for new ones.
func (s *LiveSource) fetch(ctx context.Context) error {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := unix.Poll(fds, pollTimeoutMilli)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return fmt.Errorf("poll usbmon: %w", err)
		}
		if n > 0 {
			break
		}
	}

	s.arg = mfetchArg{offvec: &s.vec[0], nfetch: maxFetch, nflush: s.nflush}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(s.fd), uintptr(monIOCXMFetch), uintptr(unsafe.Pointer(&s.arg)))
	runtime.KeepAlive(s)
	if errno != 0 {
		return fmt.Errorf("usbmon fetch: %w", errno)
	}
	s.nflush = s.arg.nfetch
	s.pending = s.vec[:s.arg.nfetch]
	return nil
}

func (s *LiveSource) eventAt(off uint32) (Event, error) {
	if int(off)+MmappedHeaderLen > len(s.ring) {
		return Event{}, fmt.Errorf("event offset %d outside ring", off)
	}
	if s.ring[int(off)+8] == fillerType {
		return Event{}, errFiller
	}
	hdr := s.ring[off : int(off)+MmappedHeaderLen]
	capLen := binary.LittleEndian.Uint32(hdr[36:40])
	end := int(off) + MmappedHeaderLen + int(capLen)
	if end > len(s.ring) {
		return Event{}, fmt.Errorf("event at %d runs past the ring", off)
	}
	return decodeHeader(s.ring[off:end], MmappedHeaderLen)
}

// Close flushes the fetched events and releases the ring.
func (s *LiveSource) Close() error {
	if s.nflush > 0 {
		unix.Syscall(unix.SYS_IOCTL, uintptr(s.fd), monIOCHMFlush, uintptr(s.nflush))
	}
	err := unix.Munmap(s.ring)
	if cerr := unix.Close(s.fd); err == nil {
		err = cerr
	}
	return err
}
