// Package pairing matches usbmon submissions with their completions.
package pairing

import (
	"rt2x00dump/common"
	"rt2x00dump/usbmon"
)

// DefaultMaxPending bounds the number of buffered submissions.
const DefaultMaxPending = 4096

// Transaction is a submission together with its completion.
type Transaction struct {
	Submit   usbmon.Event
	Complete usbmon.Event
}

// Seq returns the sequence number of the completion.
func (t *Transaction) Seq() uint64 { return t.Complete.Seq }

// Type returns the transfer type. The completion is authoritative.
func (t *Transaction) Type() usbmon.TransferType { return t.Complete.Type }

// Endpoint returns the endpoint address of the completion.
func (t *Transaction) Endpoint() uint8 { return t.Complete.Endpoint }

// DeviceFilter restricts pairing to one device.
type DeviceFilter struct {
	Bus    uint16
	Device uint8
}

// Config holds the pairer settings.
type Config struct {
	MaxPending int           // <= 0 means unbounded
	Filter     *DeviceFilter // nil accepts every device
}

type queued struct {
	id  uint64
	seq uint64
}

// Pairer buffers submissions until their completion arrives. It is not
// safe for concurrent use.
type Pairer struct {
	Log common.Logger

	cfg     Config
	pending map[uint64]usbmon.Event
	order   []queued // submission order, may hold entries already paired
}

// NewPairer creates a pairer.
func NewPairer(cfg Config) *Pairer {
	return &Pairer{
		Log:     common.NewNoOpLogger(),
		cfg:     cfg,
		pending: make(map[uint64]usbmon.Event),
	}
}

// Pending returns the number of buffered submissions.
func (p *Pairer) Pending() int {
	return len(p.pending)
}

// IsPending reports whether a submission with the given id is buffered.
func (p *Pairer) IsPending(id uint64) bool {
	_, ok := p.pending[id]
	return ok
}

// OnEvent feeds one event. It returns the completed transaction, if any,
// and the anomalies found while pairing.
func (p *Pairer) OnEvent(ev usbmon.Event) (*Transaction, []common.Record) {
	if f := p.cfg.Filter; f != nil && (ev.Bus != f.Bus || ev.Device != f.Device) {
		return nil, nil
	}

	if ev.Kind == usbmon.Submission {
		return nil, p.submit(ev)
	}

	sub, ok := p.pending[ev.ID]
	if !ok {
		// completion of a submission captured before we started
		return nil, nil
	}
	delete(p.pending, ev.ID)

	if sub.Type != ev.Type {
		err := common.Errorf(common.CodeTypeMismatch, ev.Seq,
			"id 0x%x: submitted as %s (seq %d), completed as %s", ev.ID, sub.Type, sub.Seq, ev.Type)
		p.Log.Error(err)
		return nil, []common.Record{common.NewAnomaly(err)}
	}

	var recs []common.Record
	if sub.Endpoint != ev.Endpoint {
		err := common.Errorf(common.CodeEndpointMismatch, ev.Seq,
			"id 0x%x: submitted on endpoint 0x%02x, completed on 0x%02x", ev.ID, sub.Endpoint, ev.Endpoint)
		p.Log.Warning(err.Error())
		recs = append(recs, common.NewAnomaly(err))
	}
	return &Transaction{Submit: sub, Complete: ev}, recs
}

func (p *Pairer) submit(ev usbmon.Event) []common.Record {
	var recs []common.Record

	if old, dup := p.pending[ev.ID]; dup {
		err := common.Errorf(common.CodeIDCollision, ev.Seq,
			"id 0x%x resubmitted, submission at seq %d dropped", ev.ID, old.Seq)
		p.Log.Warning(err.Error())
		recs = append(recs, common.NewAnomaly(err))
	} else if p.cfg.MaxPending > 0 && len(p.pending) >= p.cfg.MaxPending {
		if rec, ok := p.evictOldest(ev.Seq); ok {
			recs = append(recs, rec)
		}
	}

	p.pending[ev.ID] = ev
	p.order = append(p.order, queued{id: ev.ID, seq: ev.Seq})
	p.compact()
	return recs
}

// evictOldest drops the pending submission with the lowest sequence number.
func (p *Pairer) evictOldest(seq uint64) (common.Record, bool) {
	for len(p.order) > 0 {
		q := p.order[0]
		p.order = p.order[1:]
		if sub, ok := p.pending[q.id]; ok && sub.Seq == q.seq {
			delete(p.pending, q.id)
			err := common.Errorf(common.CodeStaleSubmission, seq,
				"id 0x%x submitted at seq %d never completed", q.id, q.seq)
			p.Log.Warning(err.Error())
			return common.NewAnomaly(err), true
		}
	}
	return common.Record{}, false
}

// compact drops queue entries whose submission has been paired.
func (p *Pairer) compact() {
	if len(p.order) < 2*len(p.pending)+64 {
		return
	}
	live := p.order[:0]
	for _, q := range p.order {
		if sub, ok := p.pending[q.id]; ok && sub.Seq == q.seq {
			live = append(live, q)
		}
	}
	p.order = live
}
