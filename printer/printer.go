// Package printer renders decoded records as text, one transaction per
// line. Frames add one indented line per header word.
package printer

import (
	"fmt"
	"io"
	"strings"

	"rt2x00dump/common"
)

// ANSI colours used when colour output is enabled.
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorCyan   = "\x1b[36m"
	colorDim    = "\x1b[2m"
)

// FormatRecordLine formats a record prefixed with the sequence number of
// the packet that produced it.
func FormatRecordLine(rec *common.Record) string {
	return fmt.Sprintf("Seq:%d; %s", rec.Seq, FormatRecord(rec))
}

// FormatRecord formats a record without a sequence prefix.
func FormatRecord(rec *common.Record) string {
	switch rec.Type {
	case common.RecordRegisterRead, common.RecordRegisterWrite:
		return formatRegister(rec.Dir, &rec.Register)

	case common.RecordMcuCommand:
		c := rec.Command
		return fmt.Sprintf("MCU CMD 0x%02x token 0x%02x owner 0x%02x args 0x%02x 0x%02x",
			c.Opcode, c.Token, c.Owner, c.Arg0, c.Arg1)

	case common.RecordRawAreaAccess:
		a := rec.Area
		if rec.Dir == common.DirIn {
			return fmt.Sprintf("CTRL: READ %d BYTES FROM 0x%04x (%s)", a.Length, a.Offset, a.Area)
		}
		return fmt.Sprintf("CTRL: WRITE %d BYTES TO 0x%04x (%s)", a.Length, a.Offset, a.Area)

	case common.RecordControl:
		c := rec.Control
		return fmt.Sprintf("CTRL: %02x %02x Value: %04x Index %04x Length %04x",
			c.RequestType, c.Request, c.Value, c.Index, c.Length)

	case common.RecordTransfer:
		return formatTransfer(rec)

	case common.RecordFrame:
		return formatFrame(&rec.Frame)

	case common.RecordAnomaly:
		if rec.Err == nil {
			return "ANOMALY"
		}
		return rec.Err.Error()

	default:
		return rec.Description()
	}
}

func formatRegister(dir common.Direction, acc *common.RegisterAccess) string {
	arrow := dir.Arrow()
	if acc.Bank != "" {
		return fmt.Sprintf("%s[0x%02x] %s 0x%02x", acc.Bank, acc.Offset, arrow, acc.Value)
	}

	value := fmt.Sprintf("0x%08x", acc.Value)
	if acc.Width != common.WidthFull {
		value = fmt.Sprintf("0x%04x", acc.Value)
	}
	if acc.Name == "" {
		return fmt.Sprintf("%s %s REG 0x%04x", value, arrow, acc.Offset)
	}

	name := acc.Name
	if acc.Width != common.WidthFull {
		name = fmt.Sprintf("%s (%s)", name, acc.Width)
	}
	tag := "[WRITE:"
	if dir == common.DirIn {
		tag = "[READ :"
	}
	return fmt.Sprintf("%s %s %s\t %s%s]", value, arrow, name, tag, fields(acc.Fields))
}

func formatTransfer(rec *common.Record) string {
	t := rec.Transfer
	if t.Kind == "bulk" {
		if rec.Dir == common.DirIn {
			return fmt.Sprintf("BULK%d <- READ %d BYTES", t.Endpoint, t.Length)
		}
		return fmt.Sprintf("BULK%d -> WRITE %d BYTES", t.Endpoint, t.Length)
	}
	return fmt.Sprintf("0x%x %4s %s %d", t.ID, t.Kind, rec.Dir.Arrow(), t.Endpoint)
}

func formatFrame(f *common.FrameInfo) string {
	var sb strings.Builder
	if f.Kind == common.FrameRX {
		fmt.Fprintf(&sb, "  READ FRAME%d (%d BYTES)", f.Index, f.BodyLength)
	} else {
		fmt.Fprintf(&sb, "   WRITE FRAME%d (%d BYTES)", f.Index, f.BodyLength)
	}
	for i := range f.Headers {
		sb.WriteString("\n")
		sb.WriteString(formatHeaderWord(&f.Headers[i]))
	}
	if f.Trailer != nil {
		sb.WriteString("\n")
		sb.WriteString(formatHeaderWord(f.Trailer))
	}
	return sb.String()
}

func formatHeaderWord(h *common.HeaderWord) string {
	return fmt.Sprintf("\t[%s:%s]", h.Name, fields(h.Fields))
}

func fields(fs []common.FieldValue) string {
	var sb strings.Builder
	for _, f := range fs {
		fmt.Fprintf(&sb, " %s: 0x%x", f.Name, f.Value)
	}
	return sb.String()
}

// Printer writes formatted records.
type Printer struct {
	w       io.Writer
	color   bool
	showSeq bool
}

// Option configures a Printer.
type Option func(*Printer)

// WithColor enables ANSI colours.
func WithColor(on bool) Option {
	return func(p *Printer) { p.color = on }
}

// WithSeq prefixes each record with its packet sequence number.
func WithSeq(on bool) Option {
	return func(p *Printer) { p.showSeq = on }
}

// New creates a printer writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Print writes one record followed by a newline.
func (p *Printer) Print(rec *common.Record) error {
	line := FormatRecord(rec)
	if p.showSeq {
		line = FormatRecordLine(rec)
	}
	if p.color {
		if c := colorOf(rec); c != "" {
			line = c + line + colorReset
		}
	}
	_, err := fmt.Fprintln(p.w, line)
	return err
}

func colorOf(rec *common.Record) string {
	switch rec.Type {
	case common.RecordAnomaly:
		if rec.Err != nil && rec.Err.Sev == common.ErrSevError {
			return colorRed
		}
		if rec.Err != nil && rec.Err.Sev == common.ErrSevInfo {
			return colorDim
		}
		return colorYellow
	case common.RecordMcuCommand:
		return colorCyan
	case common.RecordRegisterRead:
		if rec.Register.Bank != "" {
			return colorBlue
		}
		return colorGreen
	case common.RecordRegisterWrite:
		if rec.Register.Bank != "" {
			return colorBlue
		}
		return ""
	case common.RecordTransfer, common.RecordFrame:
		return colorDim
	default:
		return ""
	}
}
