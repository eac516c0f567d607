// Package mailbox recovers MCU commands from the host to MCU mailbox
// handshake: wait for the firmware to release H2M_MAILBOX_CSR, stage the
// arguments, token and owner there, then write the opcode to HOST_CMD.
package mailbox

import (
	"rt2x00dump/common"
	"rt2x00dump/registers"
)

// Step is the handshake position.
type Step int

const (
	AwaitingNotBusy Step = iota
	AwaitingDataLow
	AwaitingDataHigh
	AwaitingCommandLow
	AwaitingCommandHigh
)

func (s Step) String() string {
	switch s {
	case AwaitingDataLow:
		return "AWAITING_DATA_LOW"
	case AwaitingDataHigh:
		return "AWAITING_DATA_HIGH"
	case AwaitingCommandLow:
		return "AWAITING_COMMAND_LOW"
	case AwaitingCommandHigh:
		return "AWAITING_COMMAND_HIGH"
	default:
		return "AWAITING_NOT_BUSY"
	}
}

// State is the staged part of a command. The zero value is the initial
// state.
type State struct {
	Step   Step
	Arg0   uint8
	Arg1   uint8
	Token  uint8
	Owner  uint8
	Opcode uint8
}

// Config holds the two mailbox addresses.
type Config struct {
	Status  uint16 // H2M_MAILBOX_CSR
	Command uint16 // HOST_CMD
}

// Default returns the RT2870 mailbox addresses.
func Default() Config {
	return Config{Status: registers.H2MMailboxCSR, Command: registers.HostCmd}
}

// Validate checks that the two address pairs do not overlap.
func (c Config) Validate() error {
	if c.Status == c.Command || c.Status+2 == c.Command || c.Command+2 == c.Status {
		return common.ConfigErrorf("mailbox status 0x%04x and command 0x%04x overlap", c.Status, c.Command)
	}
	return nil
}

// OwnsStatus reports whether addr is the mailbox status word or its upper half.
func (c Config) OwnsStatus(addr uint16) bool {
	return addr == c.Status || addr == c.Status+2
}

// OwnsCommand reports whether addr is the host command word or its upper half.
func (c Config) OwnsCommand(addr uint16) bool {
	return addr == c.Command || addr == c.Command+2
}

// Next is the transition function of the handshake. A packet that does not
// fit the current step aborts the command, resets the state and is tried
// once more from the initial state.
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
	isWrite := a.Dir == common.DirOut
	statusRead := a.Dir == common.DirIn && a.Addr == c.Status && a.Size == 4

	switch s.Step {
	case AwaitingNotBusy:
		if statusRead {
			if owner(a.Value) != 0 {
				return s, nil, true
			}
			return State{Step: AwaitingDataLow}, nil, true
		}
		if isWrite && a.Addr == c.Status {
			// producers may skip the busy poll
			return c.step(State{Step: AwaitingDataLow}, a)
		}

	case AwaitingDataLow:
		if statusRead {
			return s, nil, true
		}
		if isWrite && a.Addr == c.Status {
			switch a.Size {
			case 4:
				return State{
					Step:  AwaitingCommandLow,
					Arg0:  uint8(a.Value),
					Arg1:  uint8(a.Value >> 8),
					Token: uint8(a.Value >> 16),
					Owner: uint8(a.Value >> 24),
				}, nil, true
			case 2:
				return State{
					Step: AwaitingDataHigh,
					Arg0: uint8(a.Value),
					Arg1: uint8(a.Value >> 8),
				}, nil, true
			}
		}

	case AwaitingDataHigh:
		if isWrite && a.Addr == c.Status+2 && a.Size == 2 {
			s.Step = AwaitingCommandLow
			s.Token = uint8(a.Value)
			s.Owner = uint8(a.Value >> 8)
			return s, nil, true
		}

	case AwaitingCommandLow:
		if isWrite && a.Addr == c.Command {
			switch a.Size {
			case 4:
				s.Opcode = uint8(a.Value)
				return State{}, []common.Record{command(s, a.Seq)}, true
			case 2:
				s.Step = AwaitingCommandHigh
				s.Opcode = uint8(a.Value)
				return s, nil, true
			}
		}

	case AwaitingCommandHigh:
		if isWrite && a.Addr == c.Command+2 && a.Size == 2 {
			return State{}, []common.Record{command(s, a.Seq)}, true
		}
	}

	err := common.Errorf(common.CodeParseFailure, a.Seq,
		"mailbox: %s of %d bytes at 0x%04x, value 0x%x, in %s", a.Dir, a.Size, a.Addr, a.Value, s.Step)
	return State{}, []common.Record{common.NewAnomaly(err)}, false
}

func owner(word uint32) uint8 {
	return uint8(word >> 24)
}

func command(s State, seq uint64) common.Record {
	return common.Record{
		Type: common.RecordMcuCommand,
		Seq:  seq,
		Dir:  common.DirOut,
		Command: common.McuCommand{
			Opcode: s.Opcode,
			Token:  s.Token,
			Owner:  s.Owner,
			Arg0:   s.Arg0,
			Arg1:   s.Arg1,
		},
	}
}

// Channel owns the mailbox state.
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

// MidHandshake reports whether a command is being assembled.
func (ch *Channel) MidHandshake() bool { return ch.state.Step != AwaitingNotBusy }

// Owns reports whether an access at addr is routed to the mailbox. Host
// command writes only belong to it while a command is being assembled.
func (ch *Channel) Owns(addr uint16) bool {
	return ch.cfg.OwnsStatus(addr) || (ch.MidHandshake() && ch.cfg.OwnsCommand(addr))
}

// Process advances the channel by one access.
func (ch *Channel) Process(a common.Access) []common.Record {
	next, recs := ch.cfg.Next(ch.state, a)
	if next.Step != ch.state.Step {
		ch.Log.Logf(common.SeverityDebug, "mailbox: %s -> %s", ch.state.Step, next.Step)
	}
	ch.state = next
	return recs
}
