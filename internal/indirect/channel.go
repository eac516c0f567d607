// Package indirect recovers accesses to the BBP and RF register banks, which
// the host reaches through a control word at a fixed MAC address: staging
// the bank address and data, kicking the operation and polling the busy bit.
package indirect

import (
	"rt2x00dump/common"
	"rt2x00dump/registers"
)

// Step is the handshake position of a channel.
type Step int

const (
	AwaitingAddrData Step = iota
	KickedForRead
	AwaitingStatus
)

func (s Step) String() string {
	switch s {
	case KickedForRead:
		return "KICKED_FOR_READ"
	case AwaitingStatus:
		return "AWAITING_STATUS"
	default:
		return "AWAITING_ADDR_DATA"
	}
}

// State is the handshake state of one bank. The zero value is the initial
// state.
type State struct {
	Step    Step
	Addr    uint16 // bank address staged by a read kick
	Low     uint16 // low half of a control word written in two packets
	HaveLow bool
}

// Control word bits shared by both banks.
const (
	dataMask = 0x000000ff
	rwBit    = 1 << 16
	kickBit  = 1 << 17
)

// Config describes one indirect bank.
type Config struct {
	Bank        string
	Low         uint16 // control word address
	High        uint16 // upper half of the control word, for 16-bit writes
	AddrMask    uint32 // bank address bits, applied after shifting out the data byte
	ReadWhenSet bool   // bit 16 set means read (BBP) rather than write (RF)
}

// BBP returns the BBP bank layout of BBP_CSR_CFG.
func BBP() Config {
	return Config{
		Bank:        "BBP",
		Low:         registers.BBPCSRCfg,
		High:        registers.BBPCSRCfg + 2,
		AddrMask:    0xff,
		ReadWhenSet: true,
	}
}

// RF returns the RF bank layout of RF_CSR_CFG.
func RF() Config {
	return Config{
		Bank:        "RF",
		Low:         registers.RFCSRCfg,
		High:        registers.RFCSRCfg + 2,
		AddrMask:    0x3f,
		ReadWhenSet: false,
	}
}

// Validate checks the bank layout.
func (c Config) Validate() error {
	if c.Bank == "" {
		return common.ConfigErrorf("indirect bank without a name")
	}
	if c.Low == c.High {
		return common.ConfigErrorf("%s: low and high address are both 0x%04x", c.Bank, c.Low)
	}
	if c.AddrMask == 0 || c.AddrMask > 0xff {
		return common.ConfigErrorf("%s: address mask 0x%x outside the address byte", c.Bank, c.AddrMask)
	}
	return nil
}

// Owns reports whether an access at addr belongs to the bank.
func (c Config) Owns(addr uint16) bool {
	return addr == c.Low || addr == c.High
}

// Next is the transition function of the handshake. A packet that does not
// fit the current step is reported, the state is reset and the packet is
// tried once more from the initial state.
func (c Config) Next(s State, a common.Access) (State, []common.Record) {
	next, recs, ok := c.step(s, a)
	if ok || s == (State{}) {
		return next, recs
	}
	retry, more, ok := c.step(State{}, a)
	if !ok {
		return State{}, recs
	}
	return retry, append(recs, more...)
}

func (c Config) step(s State, a common.Access) (State, []common.Record, bool) {
	switch {
	case a.Dir == common.DirOut && a.Addr == c.Low && a.Size == 4:
		return c.control(s, a.Value, a.Seq)

	case a.Dir == common.DirOut && a.Addr == c.Low && a.Size == 2:
		if s.Step == KickedForRead || s.HaveLow {
			return c.outOfSequence(s, a, "low half of control word")
		}
		return State{Low: uint16(a.Value), HaveLow: true}, nil, true

	case a.Dir == common.DirOut && a.Addr == c.High && a.Size == 2:
		if !s.HaveLow {
			return c.outOfSequence(s, a, "high half of control word without low half")
		}
		word := (a.Value&0xffff)<<16 | uint32(s.Low)
		s.Low, s.HaveLow = 0, false
		return c.control(s, word, a.Seq)

	case a.Dir == common.DirIn && a.Addr == c.Low && a.Size == 4:
		return c.status(s, a.Value, a.Seq)

	default:
		return c.outOfSequence(s, a, "unexpected access")
	}
}

// control handles a complete control word written by the host.
func (c Config) control(s State, word uint32, seq uint64) (State, []common.Record, bool) {
	if s.Step == KickedForRead {
		err := common.Errorf(common.CodeOutOfSequence, seq,
			"%s: read of 0x%02x abandoned by control word 0x%08x", c.Bank, s.Addr, word)
		return State{}, []common.Record{common.NewAnomaly(err)}, false
	}
	if s.HaveLow {
		err := common.Errorf(common.CodeOutOfSequence, seq,
			"%s: staged low half 0x%04x abandoned by control word 0x%08x", c.Bank, s.Low, word)
		return State{}, []common.Record{common.NewAnomaly(err)}, false
	}
	if word&kickBit == 0 {
		err := common.Errorf(common.CodeMissingKick, seq, "%s: control word 0x%08x", c.Bank, word)
		return State{}, []common.Record{common.NewAnomaly(err)}, false
	}

	addr := c.addr(word)
	read := (word&rwBit != 0) == c.ReadWhenSet
	if read {
		return State{Step: KickedForRead, Addr: addr}, nil, true
	}

	rec := common.NewRegisterRecord(common.DirOut, common.RegisterAccess{
		Bank:   c.Bank,
		Offset: addr,
		Value:  word & dataMask,
	})
	rec.Seq = seq
	return State{}, []common.Record{rec}, true
}

// status handles a read of the control word.
func (c Config) status(s State, word uint32, seq uint64) (State, []common.Record, bool) {
	if s.HaveLow {
		err := common.Errorf(common.CodeOutOfSequence, seq,
			"%s: status read while low half 0x%04x is staged", c.Bank, s.Low)
		return State{}, []common.Record{common.NewAnomaly(err)}, false
	}

	busy := word&kickBit != 0
	switch s.Step {
	case KickedForRead:
		if busy {
			return s, nil, true
		}
		rec := common.NewRegisterRecord(common.DirIn, common.RegisterAccess{
			Bank:   c.Bank,
			Offset: s.Addr,
			Value:  word & dataMask,
		})
		rec.Seq = seq
		recs := []common.Record{rec}
		if got := c.addr(word); got != s.Addr {
			err := common.Errorf(common.CodeAddressMismatch, seq,
				"%s: read of 0x%02x returned address 0x%02x", c.Bank, s.Addr, got)
			recs = append(recs, common.NewAnomaly(err))
		}
		return State{Step: AwaitingStatus}, recs, true

	case AwaitingStatus:
		return State{}, nil, true

	default:
		return s, nil, true
	}
}

func (c Config) addr(word uint32) uint16 {
	return uint16((word >> 8) & c.AddrMask)
}

func (c Config) outOfSequence(s State, a common.Access, what string) (State, []common.Record, bool) {
	err := common.Errorf(common.CodeOutOfSequence, a.Seq,
		"%s: %s: %s of %d bytes at 0x%04x, value 0x%x, in %s",
		c.Bank, what, a.Dir, a.Size, a.Addr, a.Value, s.Step)
	return State{}, []common.Record{common.NewAnomaly(err)}, false
}

// Channel owns the state of one bank.
type Channel struct {
	Log common.Logger

	cfg   Config
	state State
}

// NewChannel creates a channel in the initial state.
func NewChannel(cfg Config) *Channel {
	return &Channel{Log: common.NewNoOpLogger(), cfg: cfg}
}

// State returns the current handshake state.
func (ch *Channel) State() State { return ch.state }

// Owns reports whether an access at addr belongs to the channel.
func (ch *Channel) Owns(addr uint16) bool { return ch.cfg.Owns(addr) }

// Process advances the channel by one access.
func (ch *Channel) Process(a common.Access) []common.Record {
	next, recs := ch.cfg.Next(ch.state, a)
	if next.Step != ch.state.Step {
		ch.Log.Logf(common.SeverityDebug, "%s: %s -> %s", ch.cfg.Bank, ch.state.Step, next.Step)
	}
	ch.state = next
	return recs
}
