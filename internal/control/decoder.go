// Package control decodes paired control transfers. Vendor requests carry
// register accesses: the index is the register offset and the data stage
// (or wValue for short writes) is the value. Accesses to the indirect bank
// control words and to the MCU mailbox are handed to their channels, the
// rest is decoded against the register catalog.
package control

import (
	"encoding/binary"
	"fmt"

	"rt2x00dump/common"
	"rt2x00dump/internal/indirect"
	"rt2x00dump/internal/mailbox"
	"rt2x00dump/internal/pairing"
	"rt2x00dump/registers"
	"rt2x00dump/usbmon"
)

// Config selects the channel layouts.
type Config struct {
	Mailbox mailbox.Config
	BBP     indirect.Config
	RF      indirect.Config
}

// DefaultConfig returns the RT2870 layout.
func DefaultConfig() Config {
	return Config{
		Mailbox: mailbox.Default(),
		BBP:     indirect.BBP(),
		RF:      indirect.RF(),
	}
}

// Validate checks each channel layout.
func (c Config) Validate() error {
	if err := c.Mailbox.Validate(); err != nil {
		return err
	}
	if err := c.BBP.Validate(); err != nil {
		return err
	}
	return c.RF.Validate()
}

// Decoder owns the channels fed by control transfers.
type Decoder struct {
	Log common.Logger

	cat     *registers.Catalog
	mailbox *mailbox.Channel
	bbp     *indirect.Channel
	rf      *indirect.Channel
}

// NewDecoder creates a decoder with all channels in their initial state.
func NewDecoder(cat *registers.Catalog, cfg Config) (*Decoder, error) {
	if cat == nil {
		return nil, common.ConfigErrorf("control decoder without a register catalog")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{
		Log:     common.NewNoOpLogger(),
		cat:     cat,
		mailbox: mailbox.NewChannel(cfg.Mailbox),
		bbp:     indirect.NewChannel(cfg.BBP),
		rf:      indirect.NewChannel(cfg.RF),
	}, nil
}

// SetLogger sets the logger of the decoder and its channels.
func (d *Decoder) SetLogger(l common.Logger) {
	d.Log = l
	d.mailbox.Log = l
	d.bbp.Log = l
	d.rf.Log = l
}

// Mailbox returns the mailbox channel.
func (d *Decoder) Mailbox() *mailbox.Channel { return d.mailbox }

// BBP returns the BBP bank channel.
func (d *Decoder) BBP() *indirect.Channel { return d.bbp }

// RF returns the RF bank channel.
func (d *Decoder) RF() *indirect.Channel { return d.rf }

// Decode processes one paired control transaction.
func (d *Decoder) Decode(tr *pairing.Transaction) []common.Record {
	seq := tr.Seq()
	setup := tr.Submit.Setup
	if setup == nil {
		return anomaly(common.CodeMalformed, seq, "control transfer 0x%x without setup packet", tr.Submit.ID)
	}
	if tr.Complete.Status != 0 {
		return anomaly(common.CodeTransferFailed, seq,
			"control request 0x%02x index 0x%04x completed with status %d",
			setup.Request, setup.Index, tr.Complete.Status)
	}

	dir := common.DirOut
	if setup.IsDeviceToHost() {
		dir = common.DirIn
	}

	if !setup.IsVendor() {
		return []common.Record{{
			Type: common.RecordControl,
			Seq:  seq,
			Dir:  dir,
			Control: common.ControlRequest{
				RequestType: setup.RequestType,
				Request:     setup.Request,
				Value:       setup.Value,
				Index:       setup.Index,
				Length:      setup.Length,
			},
		}}
	}

	var recs []common.Record
	data := tr.Submit.Data
	if dir == common.DirIn {
		data = tr.Complete.Data
		if len(tr.Submit.Data) != 0 {
			recs = append(recs, anomaly(common.CodeMalformed, seq,
				"read of 0x%04x with %d bytes in the submission", setup.Index, len(tr.Submit.Data))...)
		}
	} else if len(tr.Complete.Data) != 0 {
		recs = append(recs, anomaly(common.CodeMalformed, seq,
			"write of 0x%04x with %d bytes in the completion", setup.Index, len(tr.Complete.Data))...)
	}

	return append(recs, d.dispatch(seq, dir, setup, data)...)
}

func (d *Decoder) dispatch(seq uint64, dir common.Direction, setup *usbmon.SetupPacket, data []byte) []common.Record {
	index := setup.Index
	switch {
	case d.mailbox.Owns(index):
		return d.mailbox.Process(access(seq, dir, setup, data))
	case d.bbp.Owns(index):
		return d.bbp.Process(access(seq, dir, setup, data))
	case d.rf.Owns(index):
		return d.rf.Process(access(seq, dir, setup, data))
	case index > registers.FlatLimit:
		return []common.Record{{
			Type: common.RecordRawAreaAccess,
			Seq:  seq,
			Dir:  dir,
			Area: common.AreaAccess{Offset: index, Area: d.cat.AreaName(index), Length: len(data)},
		}}
	}

	if dir == common.DirIn {
		if len(data) != 4 {
			return d.raw(seq, dir, index, len(data))
		}
		return d.flat(seq, dir, index, binary.LittleEndian.Uint32(data))
	}
	switch len(data) {
	case 4:
		return d.flat(seq, dir, index, binary.LittleEndian.Uint32(data))
	case 0:
		return d.flatValue(seq, index, setup.Value)
	default:
		return d.raw(seq, dir, index, len(data))
	}
}

// flat decodes a 32-bit access. An offset between two registers covers the
// upper half of the first and the lower half of the second.
func (d *Decoder) flat(seq uint64, dir common.Direction, index uint16, value uint32) []common.Record {
	if reg, ok := d.cat.Register(index); ok {
		return []common.Record{d.register(seq, dir, reg, index, value, registers.Full)}
	}
	lo, okLo := d.cat.Register(index - 2)
	hi, okHi := d.cat.Register(index + 2)
	if okLo && okHi {
		return []common.Record{
			d.register(seq, dir, lo, lo.Offset, value&0xffff, registers.UpperHalf),
			d.register(seq, dir, hi, hi.Offset, value>>16, registers.LowerHalf),
		}
	}
	return []common.Record{d.register(seq, dir, nil, index, value, registers.Full)}
}

// flatValue decodes a write of the 16-bit value carried in wValue.
func (d *Decoder) flatValue(seq uint64, index uint16, value uint16) []common.Record {
	if reg, ok := d.cat.Register(index); ok {
		return []common.Record{d.register(seq, common.DirOut, reg, index, uint32(value), registers.LowerHalf)}
	}
	if reg, ok := d.cat.Register(index - 2); ok {
		return []common.Record{d.register(seq, common.DirOut, reg, reg.Offset, uint32(value), registers.UpperHalf)}
	}
	return []common.Record{d.register(seq, common.DirOut, nil, index, uint32(value), registers.LowerHalf)}
}

func (d *Decoder) register(seq uint64, dir common.Direction, reg *registers.Register, offset uint16, value uint32, w registers.Width) common.Record {
	acc := common.RegisterAccess{Offset: offset, Width: w, Value: value}
	if reg != nil {
		acc.Name = reg.Name
		acc.Fields = registers.DecodeWidth(reg, value, w)
	}
	rec := common.NewRegisterRecord(dir, acc)
	rec.Seq = seq
	return rec
}

func (d *Decoder) raw(seq uint64, dir common.Direction, index uint16, n int) []common.Record {
	d.Log.Logf(common.SeverityDebug, "control: %s of %d bytes at register 0x%04x", dir, n, index)
	return []common.Record{{
		Type: common.RecordRawAreaAccess,
		Seq:  seq,
		Dir:  dir,
		Area: common.AreaAccess{Offset: index, Area: d.cat.AreaName(index), Length: n},
	}}
}

// access reduces a vendor request to a register sized access. A write
// without a data stage carries its value in wValue.
func access(seq uint64, dir common.Direction, setup *usbmon.SetupPacket, data []byte) common.Access {
	a := common.Access{Seq: seq, Dir: dir, Addr: setup.Index, Size: len(data)}
	switch {
	case dir == common.DirOut && len(data) == 0:
		a.Value = uint32(setup.Value)
		a.Size = 2
	case len(data) >= 4:
		a.Value = binary.LittleEndian.Uint32(data)
	default:
		for i := len(data) - 1; i >= 0; i-- {
			a.Value = a.Value<<8 | uint32(data[i])
		}
	}
	return a
}

func anomaly(code common.ErrCode, seq uint64, format string, args ...any) []common.Record {
	return []common.Record{common.NewAnomaly(common.NewError(code, seq, fmt.Sprintf(format, args...)))}
}
