package common

import (
	"fmt"
	"strings"
)

// RecordType represents the type of a decoded record
type RecordType int

const (
	RecordUnknown       RecordType = iota
	RecordRegisterRead             // Register read (flat or indirect bank)
	RecordRegisterWrite            // Register write (flat or indirect bank)
	RecordMcuCommand               // MCU mailbox command invocation
	RecordRawAreaAccess            // Access outside the flat register space, not field decoded
	RecordControl                  // Non-vendor control request, reported verbatim
	RecordTransfer                 // Transfer summary (bulk, interrupt, isochronous)
	RecordFrame                    // One frame split out of a bulk transfer
	RecordAnomaly                  // Recoverable protocol anomaly or framing error
)

func (t RecordType) String() string {
	switch t {
	case RecordRegisterRead:
		return "REG_READ"
	case RecordRegisterWrite:
		return "REG_WRITE"
	case RecordMcuCommand:
		return "MCU_COMMAND"
	case RecordRawAreaAccess:
		return "AREA_ACCESS"
	case RecordControl:
		return "CONTROL"
	case RecordTransfer:
		return "TRANSFER"
	case RecordFrame:
		return "FRAME"
	case RecordAnomaly:
		return "ANOMALY"
	default:
		return "UNKNOWN"
	}
}

// Direction of a transfer as seen from the host.
type Direction int

const (
	DirOut Direction = iota // host-to-device, a write
	DirIn                   // device-to-host, a read
)

func (d Direction) String() string {
	if d == DirIn {
		return "READ"
	}
	return "WRITE"
}

// Arrow returns "<-" for reads and "->" for writes.
func (d Direction) Arrow() string {
	if d == DirIn {
		return "<-"
	}
	return "->"
}

// Width is the part of a 32-bit register a value covers.
type Width int

const (
	WidthFull  Width = iota // all 32 bits
	WidthUpper              // bits [31:16], value held in the low 16 bits
	WidthLower              // bits [15:0]
)

// Mask returns the register bits covered by the width.
func (w Width) Mask() uint32 {
	switch w {
	case WidthUpper:
		return 0xffff0000
	case WidthLower:
		return 0x0000ffff
	default:
		return 0xffffffff
	}
}

func (w Width) String() string {
	switch w {
	case WidthUpper:
		return "16 MSB"
	case WidthLower:
		return "16 LSB"
	default:
		return "32"
	}
}

// FieldValue is one decoded bitfield.
type FieldValue struct {
	Name  string
	Value uint32
}

// RegisterAccess describes a register read or write
type RegisterAccess struct {
	Bank   string       // "" for memory mapped registers, otherwise the indirect bank ("BBP", "RF")
	Offset uint16       // register offset or bank address
	Name   string       // register name, "" when the offset did not resolve
	Width  Width        // part of the register the value covers
	Value  uint32       // value as transferred (16-bit halves are not shifted)
	Fields []FieldValue // decoded fields, most significant first
}

// McuCommand is a command handed to the on-chip MCU through the mailbox
type McuCommand struct {
	Opcode uint8
	Token  uint8
	Owner  uint8
	Arg0   uint8
	Arg1   uint8
}

// AreaAccess is an access to a memory area outside the flat register space
type AreaAccess struct {
	Offset uint16
	Area   string
	Length int
}

// ControlRequest holds the SETUP fields of a non-vendor control transfer
type ControlRequest struct {
	RequestType uint8
	Request     uint8
	Value       uint16
	Index       uint16
	Length      uint16
}

// TransferInfo summarises a transfer that is not decoded further
type TransferInfo struct {
	ID       uint64
	Kind     string // "iso", "intr", "ctrl", "bulk"
	Endpoint uint8
	Length   int
}

// FrameKind tells transmit and receive bulk framing apart
type FrameKind int

const (
	FrameTX FrameKind = iota
	FrameRX
)

func (k FrameKind) String() string {
	if k == FrameRX {
		return "RX"
	}
	return "TX"
}

// HeaderWord is one decoded in-band descriptor word
type HeaderWord struct {
	Name   string
	Value  uint32
	Fields []FieldValue
}

// FrameInfo describes one frame split out of a bulk transfer
type FrameInfo struct {
	Kind       FrameKind
	Index      int          // position within the transfer
	Offset     int          // byte offset of the frame descriptor
	BodyLength int          // declared length from the descriptor
	Headers    []HeaderWord // descriptor followed by the fixed header words
	Trailer    *HeaderWord  // RX only
}

// Record is one decoded, protocol level event
type Record struct {
	Type RecordType
	Seq  uint64    // sequence number of the event that produced the record
	Dir  Direction // direction of the underlying transfer

	Register RegisterAccess // RecordRegisterRead, RecordRegisterWrite
	Command  McuCommand     // RecordMcuCommand
	Area     AreaAccess     // RecordRawAreaAccess
	Control  ControlRequest // RecordControl
	Transfer TransferInfo   // RecordTransfer
	Frame    FrameInfo      // RecordFrame
	Err      *Error         // RecordAnomaly
}

// NewRegisterRecord creates a register read or write record.
func NewRegisterRecord(dir Direction, acc RegisterAccess) Record {
	typ := RecordRegisterWrite
	if dir == DirIn {
		typ = RecordRegisterRead
	}
	return Record{Type: typ, Dir: dir, Register: acc}
}

// NewAnomaly wraps an error into an anomaly record.
func NewAnomaly(err *Error) Record {
	return Record{Type: RecordAnomaly, Seq: err.Seq, Err: err}
}

// Description returns a compact single line description of the record
func (r *Record) Description() string {
	switch r.Type {
	case RecordRegisterRead, RecordRegisterWrite:
		name := r.Register.Name
		if name == "" {
			name = fmt.Sprintf("0x%04x", r.Register.Offset)
		}
		if r.Register.Bank != "" {
			name = fmt.Sprintf("%s[0x%02x]", r.Register.Bank, r.Register.Offset)
		}
		return fmt.Sprintf("%s: %s %s 0x%x%s", r.Type, name, r.Dir.Arrow(), r.Register.Value, fieldsString(r.Register.Fields))

	case RecordMcuCommand:
		c := r.Command
		return fmt.Sprintf("%s: opcode=0x%02x token=0x%02x owner=0x%02x arg0=0x%02x arg1=0x%02x",
			r.Type, c.Opcode, c.Token, c.Owner, c.Arg0, c.Arg1)

	case RecordRawAreaAccess:
		return fmt.Sprintf("%s: %s %d bytes 0x%04x (%s)", r.Type, r.Dir, r.Area.Length, r.Area.Offset, r.Area.Area)

	case RecordControl:
		c := r.Control
		return fmt.Sprintf("%s: %02x %02x value=0x%04x index=0x%04x length=0x%04x",
			r.Type, c.RequestType, c.Request, c.Value, c.Index, c.Length)

	case RecordTransfer:
		return fmt.Sprintf("%s: %s ep%d %s %d bytes", r.Type, r.Transfer.Kind, r.Transfer.Endpoint, r.Dir.Arrow(), r.Transfer.Length)

	case RecordFrame:
		return fmt.Sprintf("%s: %s%d at %d, %d bytes", r.Type, r.Frame.Kind, r.Frame.Index, r.Frame.Offset, r.Frame.BodyLength)

	case RecordAnomaly:
		if r.Err == nil {
			return "ANOMALY"
		}
		return fmt.Sprintf("%s: %s", r.Type, r.Err.Error())

	default:
		return "UNKNOWN_RECORD"
	}
}

func fieldsString(fields []FieldValue) string {
	if len(fields) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(" [")
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%s: 0x%x", f.Name, f.Value))
	}
	sb.WriteString("]")
	return sb.String()
}

// Access is a register sized access taken from one control transfer.
type Access struct {
	Seq   uint64
	Dir   Direction
	Addr  uint16
	Value uint32
	Size  int // 4 for a data stage word, 2 for a value carried in wValue
}
