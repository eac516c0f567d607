// Package frame splits bulk transfer payloads into the frames they carry.
// Each frame starts with a 4-byte information word whose low 16 bits give
// the declared length, followed by fixed header words. Transmit payloads
// hold TXINFO and the TXWI words; receive payloads hold RXINFO, four RXWI
// words, the frame body and an RXD trailer.
package frame

import (
	"encoding/binary"

	"rt2x00dump/common"
	"rt2x00dump/registers"
)

// Framing sizes in bytes.
const (
	InfoSize   = 4  // TXINFO / RXINFO
	TXWISize   = 8  // decoded TXWI words, part of the declared length
	RXWISize   = 16 // RXWI_W0..W3, not part of the declared length
	RXDSize    = 4  // RXD trailer
	MinTXFrame = InfoSize + TXWISize
	MinRXFrame = InfoSize + RXWISize + RXDSize

	// DefaultTxAlign is the transmit frame alignment used by rt2x00.
	DefaultTxAlign = 4
)

// Splitter walks bulk payloads. It holds no per-transfer state.
type Splitter struct {
	Log common.Logger

	txAlign int
	txinfo  *registers.Register
	txwi    []*registers.Register
	rxinfo  *registers.Register
	rxwi    []*registers.Register
	rxd     *registers.Register
}

// NewSplitter resolves the in-band descriptors from cat. txAlign is the
// transmit frame alignment; zero selects DefaultTxAlign.
func NewSplitter(cat *registers.Catalog, txAlign int) (*Splitter, error) {
	if txAlign == 0 {
		txAlign = DefaultTxAlign
	}
	if txAlign < 0 || txAlign&(txAlign-1) != 0 {
		return nil, common.ConfigErrorf("tx alignment %d is not a power of two", txAlign)
	}

	s := &Splitter{Log: common.NewNoOpLogger(), txAlign: txAlign}
	var missing []string
	lookup := func(name string) *registers.Register {
		r, ok := cat.Descriptor(name)
		if !ok {
			missing = append(missing, name)
		}
		return r
	}
	s.txinfo = lookup("TXINFO")
	s.txwi = []*registers.Register{lookup("TXWI_W0"), lookup("TXWI_W1")}
	s.rxinfo = lookup("RXINFO")
	s.rxwi = []*registers.Register{lookup("RXWI_W0"), lookup("RXWI_W1"), lookup("RXWI_W2"), lookup("RXWI_W3")}
	s.rxd = lookup("RXD")
	if len(missing) > 0 {
		return nil, common.ConfigErrorf("catalog lacks descriptors %v", missing)
	}
	return s, nil
}

// Split returns one Frame record per frame in buf, read with transmit
// framing for DirOut and receive framing for DirIn. The walk goes on while
// more than a minimum frame remains and the rest is not all zero. A
// declared length that runs past the end of buf stops the walk: the frames
// found so far are returned with a framing error. Records carry no
// sequence number.
func (s *Splitter) Split(dir common.Direction, buf []byte) ([]common.Record, error) {
	if dir == common.DirIn {
		return s.splitRX(buf)
	}
	return s.splitTX(buf)
}

func (s *Splitter) splitTX(buf []byte) ([]common.Record, error) {
	var recs []common.Record
	off := 0
	for len(buf)-off > MinTXFrame && !zero(buf[off:]) {
		declared := int(binary.LittleEndian.Uint16(buf[off:]))
		if declared < TXWISize {
			// not a frame; left to trailing
			break
		}
		if off+InfoSize+declared > len(buf) {
			return recs, overrun(common.FrameTX, len(recs), off, declared, len(buf))
		}

		info := common.FrameInfo{
			Kind:       common.FrameTX,
			Index:      len(recs),
			Offset:     off,
			BodyLength: declared,
			Headers:    s.words(buf[off:], append([]*registers.Register{s.txinfo}, s.txwi...)),
		}
		recs = append(recs, common.Record{Type: common.RecordFrame, Dir: common.DirOut, Frame: info})

		next := off + InfoSize + roundUp(declared, s.txAlign)
		if next > len(buf) {
			next = len(buf)
		}
		off = next
	}
	return append(recs, s.trailing(common.FrameTX, buf[off:], off)...), nil
}

func (s *Splitter) splitRX(buf []byte) ([]common.Record, error) {
	var recs []common.Record
	off := 0
	for len(buf)-off > MinRXFrame && !zero(buf[off:]) {
		declared := int(binary.LittleEndian.Uint16(buf[off:]))
		end := off + MinRXFrame + declared
		if end > len(buf) {
			return recs, overrun(common.FrameRX, len(recs), off, declared, len(buf))
		}

		trailer := s.word(buf[end-RXDSize:], s.rxd)
		info := common.FrameInfo{
			Kind:       common.FrameRX,
			Index:      len(recs),
			Offset:     off,
			BodyLength: declared,
			Headers:    s.words(buf[off:], append([]*registers.Register{s.rxinfo}, s.rxwi...)),
			Trailer:    &trailer,
		}
		recs = append(recs, common.Record{Type: common.RecordFrame, Dir: common.DirIn, Frame: info})
		off = end
	}
	return append(recs, s.trailing(common.FrameRX, buf[off:], off)...), nil
}

// words decodes consecutive 32-bit words at the start of b.
func (s *Splitter) words(b []byte, regs []*registers.Register) []common.HeaderWord {
	out := make([]common.HeaderWord, len(regs))
	for i, r := range regs {
		out[i] = s.word(b[4*i:], r)
	}
	return out
}

func (s *Splitter) word(b []byte, r *registers.Register) common.HeaderWord {
	v := binary.LittleEndian.Uint32(b)
	return common.HeaderWord{Name: r.Name, Value: v, Fields: registers.Decode(r, v, 0xffffffff)}
}

// trailing reports bytes left after the last frame. Zero padding is normal.
func (s *Splitter) trailing(kind common.FrameKind, rest []byte, off int) []common.Record {
	if !zero(rest) {
		err := common.Errorf(common.CodeTrailingBytes, common.NoSeq,
			"%s: %d bytes after the last frame at %d", kind, len(rest), off)
		return []common.Record{common.NewAnomaly(err)}
	}
	if len(rest) > 0 {
		s.Log.Logf(common.SeverityDebug, "%s: %d bytes of end padding", kind, len(rest))
	}
	return nil
}

func zero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

func overrun(kind common.FrameKind, index, off, declared, size int) *common.Error {
	return common.Errorf(common.CodeFraming, common.NoSeq,
		"%s frame %d at %d: declared length %d overruns the %d byte buffer", kind, index, off, declared, size)
}

func roundUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
