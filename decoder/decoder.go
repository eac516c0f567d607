// Package decoder turns a stream of usbmon events captured from an
// RT2870/RT3070 USB WLAN device into register accesses, MCU commands and
// bulk frames.
//
// A Decoder pairs each submission with its completion, then hands control
// transfers to the register channels and bulk transfers to the frame
// splitter. Protocol anomalies never stop decoding: they are returned as
// Anomaly records and the affected state machine starts over.
package decoder

import (
	"errors"

	"rt2x00dump/common"
	"rt2x00dump/frame"
	"rt2x00dump/internal/control"
	"rt2x00dump/internal/pairing"
	"rt2x00dump/registers"
	"rt2x00dump/usbmon"
)

// Decoder is the decode pipeline for one capture. It is not safe for
// concurrent use.
type Decoder struct {
	Log common.Logger

	pairer   *pairing.Pairer
	control  *control.Decoder
	splitter *frame.Splitter
}

// New creates a decoder using the built in register catalog.
func New(cfg Config) (*Decoder, error) {
	cat, err := registers.Default()
	if err != nil {
		return nil, err
	}
	return NewWithCatalog(cat, cfg)
}

// NewWithCatalog creates a decoder for a custom register catalog. The
// catalog is validated first; any error is a configuration error.
func NewWithCatalog(cat *registers.Catalog, cfg Config) (*Decoder, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctl, err := control.NewDecoder(cat, cfg.Channels)
	if err != nil {
		return nil, err
	}
	split, err := frame.NewSplitter(cat, cfg.TxAlign)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		Log:      common.NewNoOpLogger(),
		pairer:   pairing.NewPairer(pairing.Config{MaxPending: cfg.MaxPending, Filter: cfg.Filter}),
		control:  ctl,
		splitter: split,
	}, nil
}

// SetLogger sets the logger of the decoder and its state machines.
// Anomalies are logged once, by the decoder.
func (d *Decoder) SetLogger(l common.Logger) {
	d.Log = l
	d.control.SetLogger(l)
	d.splitter.Log = l
}

// Pending returns the number of submissions waiting for a completion.
func (d *Decoder) Pending() int { return d.pairer.Pending() }

// ProcessEvent feeds one event and returns the records it completes.
func (d *Decoder) ProcessEvent(ev usbmon.Event) []common.Record {
	tr, recs := d.pairer.OnEvent(ev)
	if tr != nil {
		switch tr.Type() {
		case usbmon.Control:
			recs = append(recs, d.control.Decode(tr)...)
		case usbmon.Bulk:
			recs = append(recs, d.bulk(tr)...)
		default:
			recs = append(recs, transfer(tr, d.payload(tr)))
		}
	}

	for i := range recs {
		if recs[i].Type == common.RecordAnomaly {
			d.logAnomaly(recs[i].Err)
		}
	}
	return recs
}

// bulk reports the transfer and the frames it carries.
func (d *Decoder) bulk(tr *pairing.Transaction) []common.Record {
	seq := tr.Seq()
	if tr.Complete.Status != 0 {
		err := common.Errorf(common.CodeTransferFailed, seq,
			"bulk endpoint %d completed with status %d", tr.Complete.EndpointNumber(), tr.Complete.Status)
		return []common.Record{common.NewAnomaly(err)}
	}

	data := d.payload(tr)
	recs := []common.Record{transfer(tr, data)}
	frames, err := d.splitter.Split(tr.Complete.Dir(), data)
	for _, f := range frames {
		f.Seq = seq
		if f.Err != nil {
			f.Err.Seq = seq
		}
		recs = append(recs, f)
	}
	if err != nil {
		var ferr *common.Error
		if !errors.As(err, &ferr) {
			ferr = common.NewError(common.CodeFraming, seq, err.Error())
		}
		ferr.Seq = seq
		recs = append(recs, common.NewAnomaly(ferr))
	}
	return recs
}

// payload returns the data stage: IN data travels in the completion, OUT
// data in the submission.
func (d *Decoder) payload(tr *pairing.Transaction) []byte {
	if tr.Complete.In() {
		return tr.Complete.Data
	}
	return tr.Submit.Data
}

func transfer(tr *pairing.Transaction, data []byte) common.Record {
	return common.Record{
		Type: common.RecordTransfer,
		Seq:  tr.Seq(),
		Dir:  tr.Complete.Dir(),
		Transfer: common.TransferInfo{
			ID:       tr.Complete.ID,
			Kind:     tr.Type().String(),
			Endpoint: tr.Complete.EndpointNumber(),
			Length:   len(data),
		},
	}
}

func (d *Decoder) logAnomaly(err *common.Error) {
	d.Log.Log(err.Severity(), err.Error())
}
