package control

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"rt2x00dump/common"
	"rt2x00dump/internal/pairing"
	"rt2x00dump/registers"
	"rt2x00dump/usbmon"
	"rt2x00dump/usbmon/usbmontest"
)

func newDecoder(t *testing.T) *Decoder {
	t.Helper()
	cat, err := registers.Default()
	if err != nil {
		t.Fatalf("registers.Default() = %v", err)
	}
	d, err := NewDecoder(cat, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDecoder() = %v", err)
	}
	return d
}

func pair(seq uint64, events []usbmon.Event) *pairing.Transaction {
	events[0].Seq = seq - 1
	events[1].Seq = seq
	return &pairing.Transaction{Submit: events[0], Complete: events[1]}
}

func reg(seq uint64, dir common.Direction, name string, off uint16, w common.Width, v uint32) common.Record {
	r := common.NewRegisterRecord(dir, common.RegisterAccess{Offset: off, Name: name, Width: w, Value: v})
	r.Seq = seq
	return r
}

func area(seq uint64, dir common.Direction, off uint16, name string, n int) common.Record {
	return common.Record{
		Type: common.RecordRawAreaAccess,
		Seq:  seq,
		Dir:  dir,
		Area: common.AreaAccess{Offset: off, Area: name, Length: n},
	}
}

func anomalyRec(seq uint64, code common.ErrCode) common.Record {
	return common.Record{Type: common.RecordAnomaly, Seq: seq, Err: &common.Error{Code: code, Seq: seq}}
}

// recordCmp leaves field decode to the codec tests.
var recordCmp = cmp.Options{
	cmpopts.IgnoreFields(common.Error{}, "Sev", "Message"),
	cmpopts.IgnoreFields(common.RegisterAccess{}, "Fields"),
	cmpopts.EquateEmpty(),
}

func TestDecodeFlatRegisters(t *testing.T) {
	tests := []struct {
		name string
		tr   *pairing.Transaction
		want []common.Record
	}{
		{
			name: "full register read",
			tr:   pair(2, usbmontest.VendorRead(1, 0x1000, usbmontest.Word(0x30710200))),
			want: []common.Record{reg(2, common.DirIn, "ASIC_VER_ID", 0x1000, common.WidthFull, 0x30710200)},
		},
		{
			name: "read across two registers",
			tr:   pair(2, usbmontest.VendorRead(1, 0x1002, usbmontest.Word(0x000c3071))),
			want: []common.Record{
				reg(2, common.DirIn, "ASIC_VER_ID", 0x1000, common.WidthUpper, 0x3071),
				reg(2, common.DirIn, "MAC_SYS_CTRL", 0x1004, common.WidthLower, 0x000c),
			},
		},
		{
			name: "unknown register read",
			tr:   pair(2, usbmontest.VendorRead(1, 0x0100, usbmontest.Word(0xdeadbeef))),
			want: []common.Record{reg(2, common.DirIn, "", 0x0100, common.WidthFull, 0xdeadbeef)},
		},
		{
			name: "short read",
			tr:   pair(2, usbmontest.VendorRead(1, 0x1000, []byte{1, 2})),
			want: []common.Record{area(2, common.DirIn, 0x1000, "MAC REGISTERS", 2)},
		},
		{
			name: "full register write",
			tr:   pair(2, usbmontest.VendorWrite(1, 0x1004, 0, usbmontest.Word(0x0000000c))),
			want: []common.Record{reg(2, common.DirOut, "MAC_SYS_CTRL", 0x1004, common.WidthFull, 0x0c)},
		},
		{
			name: "wValue write to the lower half",
			tr:   pair(2, usbmontest.VendorWrite(1, 0x0208, 0x0055, nil)),
			want: []common.Record{reg(2, common.DirOut, "WPDMA_GLO_CFG", 0x0208, common.WidthLower, 0x55)},
		},
		{
			name: "wValue write to the upper half",
			tr:   pair(2, usbmontest.VendorWrite(1, 0x020a, 0x0001, nil)),
			want: []common.Record{reg(2, common.DirOut, "WPDMA_GLO_CFG", 0x0208, common.WidthUpper, 0x01)},
		},
		{
			name: "wValue write to an unknown register",
			tr:   pair(2, usbmontest.VendorWrite(1, 0x0100, 0x1234, nil)),
			want: []common.Record{reg(2, common.DirOut, "", 0x0100, common.WidthLower, 0x1234)},
		},
		{
			name: "odd write length",
			tr:   pair(2, usbmontest.VendorWrite(1, 0x1004, 0, []byte{1, 2, 3})),
			want: []common.Record{area(2, common.DirOut, 0x1004, "MAC REGISTERS", 3)},
		},
		{
			name: "host command outside a handshake",
			tr:   pair(2, usbmontest.VendorWrite(1, 0x0404, 0, usbmontest.Word(0x30))),
			want: []common.Record{reg(2, common.DirOut, "HOST_CMD", 0x0404, common.WidthFull, 0x30)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newDecoder(t).Decode(tt.tr)
			if diff := cmp.Diff(tt.want, got, recordCmp); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeFields(t *testing.T) {
	got := newDecoder(t).Decode(pair(2, usbmontest.VendorRead(1, 0x1000, usbmontest.Word(0x30710200))))
	if len(got) != 1 {
		t.Fatalf("Decode() = %v, want one record", got)
	}
	want := []common.FieldValue{{Name: "VER_ID", Value: 0x3071}, {Name: "REV_ID", Value: 0x0200}}
	if diff := cmp.Diff(want, got[0].Register.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAreasAndRequests(t *testing.T) {
	failed := usbmontest.VendorRead(1, 0x1000, nil)
	failed[1].Status = -32

	noSetup := usbmontest.VendorRead(1, 0x1000, usbmontest.Word(0))
	noSetup[0].Setup = nil

	readWithData := usbmontest.VendorRead(1, 0x1000, usbmontest.Word(0x30710200))
	readWithData[0].Data = []byte{0}

	std := usbmontest.VendorRead(1, 0, []byte{0x12, 0x01})
	std[0].Setup = &usbmon.SetupPacket{RequestType: 0x80, Request: 0x06, Value: 0x0100, Length: 18}

	tests := []struct {
		name string
		tr   *pairing.Transaction
		want []common.Record
	}{
		{
			name: "firmware upload",
			tr:   pair(2, usbmontest.VendorWrite(1, 0x3000, 0, make([]byte, 64))),
			want: []common.Record{area(2, common.DirOut, 0x3000, "Firmware", 64)},
		},
		{
			name: "unmapped area read",
			tr:   pair(2, usbmontest.VendorRead(1, 0x2100, make([]byte, 8))),
			want: []common.Record{area(2, common.DirIn, 0x2100, "Unknown 1", 8)},
		},
		{
			name: "standard request",
			tr:   pair(2, std),
			want: []common.Record{{
				Type:    common.RecordControl,
				Seq:     2,
				Dir:     common.DirIn,
				Control: common.ControlRequest{RequestType: 0x80, Request: 0x06, Value: 0x0100, Length: 18},
			}},
		},
		{
			name: "failed transfer",
			tr:   pair(2, failed),
			want: []common.Record{anomalyRec(2, common.CodeTransferFailed)},
		},
		{
			name: "missing setup",
			tr:   pair(2, noSetup),
			want: []common.Record{anomalyRec(2, common.CodeMalformed)},
		},
		{
			name: "read with submission data",
			tr:   pair(2, readWithData),
			want: []common.Record{
				anomalyRec(2, common.CodeMalformed),
				reg(2, common.DirIn, "ASIC_VER_ID", 0x1000, common.WidthFull, 0x30710200),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newDecoder(t).Decode(tt.tr)
			if diff := cmp.Diff(tt.want, got, recordCmp); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDispatchToChannels(t *testing.T) {
	d := newDecoder(t)

	var txs []*pairing.Transaction
	add := func(events []usbmon.Event) {
		txs = append(txs, pair(uint64(2*len(txs)+2), events))
	}
	// BBP write, RF read, then an MCU command with 16-bit halves.
	add(usbmontest.VendorWrite(1, 0x101c, 0, usbmontest.Word(0x00024205)))
	add(usbmontest.VendorWrite(2, 0x0500, 0, usbmontest.Word(0x00020700)))
	add(usbmontest.VendorRead(3, 0x0500, usbmontest.Word(0x00000734)))
	add(usbmontest.VendorRead(4, 0x7010, usbmontest.Word(0)))
	add(usbmontest.VendorWrite(5, 0x7010, 0x0201, nil))
	add(usbmontest.VendorWrite(6, 0x7012, 0x0107, nil))
	add(usbmontest.VendorWrite(7, 0x0404, 0x0009, nil))
	add(usbmontest.VendorWrite(8, 0x0406, 0x0000, nil))

	var got []common.Record
	for _, tr := range txs {
		got = append(got, d.Decode(tr)...)
	}

	bbp := common.NewRegisterRecord(common.DirOut, common.RegisterAccess{Bank: "BBP", Offset: 0x42, Value: 0x05})
	bbp.Seq = 2
	rf := common.NewRegisterRecord(common.DirIn, common.RegisterAccess{Bank: "RF", Offset: 0x07, Value: 0x34})
	rf.Seq = 6
	want := []common.Record{
		bbp,
		rf,
		{
			Type:    common.RecordMcuCommand,
			Seq:     16,
			Dir:     common.DirOut,
			Command: common.McuCommand{Opcode: 0x09, Token: 0x07, Owner: 0x01, Arg0: 0x01, Arg1: 0x02},
		},
	}
	if diff := cmp.Diff(want, got, recordCmp); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if d.Mailbox().MidHandshake() {
		t.Error("mailbox still mid handshake")
	}
}

func TestNewDecoderRejectsBadConfig(t *testing.T) {
	cat, err := registers.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.RF.AddrMask = 0
	if _, err := NewDecoder(cat, cfg); err == nil {
		t.Error("NewDecoder() accepted an empty RF address mask")
	}
	if _, err := NewDecoder(nil, DefaultConfig()); err == nil {
		t.Error("NewDecoder() accepted a nil catalog")
	}
}
