package decoder

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"rt2x00dump/common"
	"rt2x00dump/internal/pairing"
	"rt2x00dump/registers"
	"rt2x00dump/usbmon"
	"rt2x00dump/usbmon/usbmontest"
)

// sequence numbers events in capture order, starting at 1.
func sequence(groups ...[]usbmon.Event) []usbmon.Event {
	var out []usbmon.Event
	for _, g := range groups {
		out = append(out, g...)
	}
	for i := range out {
		out[i].Seq = uint64(i + 1)
	}
	return out
}

func run(t *testing.T, d *Decoder, events []usbmon.Event) []common.Record {
	t.Helper()
	var recs []common.Record
	for _, ev := range events {
		recs = append(recs, d.ProcessEvent(ev)...)
	}
	return recs
}

func newDecoder(t *testing.T) *Decoder {
	t.Helper()
	d, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return d
}

// describe reduces records to their one-line descriptions.
func describe(recs []common.Record) []string {
	var out []string
	for i := range recs {
		out = append(out, recs[i].Description())
	}
	return out
}

func rxFrame(declared int) []byte {
	b := make([]byte, 4+16+declared+4)
	binary.LittleEndian.PutUint32(b, uint32(declared))
	return b
}

func TestDecoderEndToEnd(t *testing.T) {
	// Two control transfers interleaved, as usbmon reports them.
	verRead := usbmontest.VendorRead(0xa1, 0x1000, usbmontest.Word(0x30710200))
	sysWrite := usbmontest.VendorWrite(0xa2, 0x1004, 0, usbmontest.Word(0x0000000c))
	events := sequence(
		verRead[:1],
		sysWrite,
		verRead[1:],
		usbmontest.VendorWrite(0xa3, 0x101c, 0, usbmontest.Word(0x00024205)),
		usbmontest.VendorRead(0xa4, 0x7010, usbmontest.Word(0)),
		usbmontest.VendorWrite(0xa5, 0x7010, 0, usbmontest.Word(0x01ff1130)),
		usbmontest.VendorWrite(0xa6, 0x0404, 0, usbmontest.Word(0x30)),
		usbmontest.VendorWrite(0xa7, 0x3000, 0, make([]byte, 64)),
	)

	got := describe(run(t, newDecoder(t), events))
	want := []string{
		"REG_WRITE: MAC_SYS_CTRL -> 0xc [Reserved: 0x0 RX_TS_EN: 0x0 WLAN_HALT_EN: 0x0 PBF_LOOP_EN: 0x0 CONT_TX_TEST: 0x0 MAC_RX_EN: 0x1 MAC_TX_EN: 0x1 BBP_HRST: 0x0 MAC_SRST: 0x0]",
		"REG_READ: ASIC_VER_ID <- 0x30710200 [VER_ID: 0x3071 REV_ID: 0x200]",
		"REG_WRITE: BBP[0x42] -> 0x5",
		"MCU_COMMAND: opcode=0x30 token=0xff owner=0x01 arg0=0x30 arg1=0x11",
		"AREA_ACCESS: WRITE 64 bytes 0x3000 (Firmware)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderBulkAndOtherTransfers(t *testing.T) {
	rx := append(rxFrame(32), rxFrame(16)...)
	events := sequence(
		[]usbmon.Event{
			usbmontest.Submit(0xb1, usbmon.Bulk, 0x81, nil, nil),
			usbmontest.Complete(0xb1, usbmon.Bulk, 0x81, rx),
		},
		[]usbmon.Event{
			usbmontest.Submit(0xb2, usbmon.Interrupt, 0x82, nil, nil),
			usbmontest.Complete(0xb2, usbmon.Interrupt, 0x82, []byte{1, 2}),
		},
		[]usbmon.Event{
			usbmontest.Submit(0xb3, usbmon.Bulk, 0x81, nil, nil),
			usbmontest.Complete(0xb3, usbmon.Bulk, 0x81, rx[:90]),
		},
	)

	recs := run(t, newDecoder(t), events)
	got := describe(recs)
	want := []string{
		"TRANSFER: bulk ep1 <- 96 bytes",
		"FRAME: RX0 at 0, 32 bytes",
		"FRAME: RX1 at 56, 16 bytes",
		"TRANSFER: intr ep2 <- 2 bytes",
		"TRANSFER: bulk ep1 <- 90 bytes",
		"FRAME: RX0 at 0, 32 bytes",
	}
	if diff := cmp.Diff(want, got[:len(got)-1]); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	last := recs[len(recs)-1]
	if last.Type != common.RecordAnomaly || !errors.Is(last.Err, common.ErrFraming) || last.Seq != 6 {
		t.Errorf("last record = %+v, want framing anomaly at seq 6", last)
	}
	for _, r := range recs[:len(recs)-1] {
		if r.Type == common.RecordFrame && r.Seq != 2 && r.Seq != 6 {
			t.Errorf("frame at seq %d, want the completion seq", r.Seq)
		}
	}
}

func TestDecoderAnomaliesDoNotStop(t *testing.T) {
	failed := usbmontest.Complete(0xc2, usbmon.Bulk, 0x01, nil)
	failed.Status = -71

	events := sequence(
		// read kick abandoned by an unrelated BBP write
		usbmontest.VendorWrite(0xc0, 0x101c, 0, usbmontest.Word(0x00034200)),
		usbmontest.VendorWrite(0xc1, 0x101c, 0, usbmontest.Word(0x00024310)),
		[]usbmon.Event{usbmontest.Submit(0xc2, usbmon.Bulk, 0x01, nil, make([]byte, 16)), failed},
		// a completion whose submission was never seen
		[]usbmon.Event{usbmontest.Complete(0xdead, usbmon.Control, 0, nil)},
		usbmontest.VendorRead(0xc3, 0x1000, usbmontest.Word(0x30710200)),
	)

	recs := run(t, newDecoder(t), events)
	var types []common.RecordType
	var codes []common.ErrCode
	for _, r := range recs {
		types = append(types, r.Type)
		if r.Err != nil {
			codes = append(codes, r.Err.Code)
		}
	}
	wantTypes := []common.RecordType{
		common.RecordAnomaly, common.RecordRegisterWrite,
		common.RecordAnomaly,
		common.RecordRegisterRead,
	}
	if diff := cmp.Diff(wantTypes, types); diff != "" {
		t.Errorf("record types mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]common.ErrCode{common.CodeOutOfSequence, common.CodeTransferFailed}, codes); diff != "" {
		t.Errorf("anomaly codes mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderLogsAnomalies(t *testing.T) {
	var out bytes.Buffer
	d := newDecoder(t)
	d.SetLogger(common.NewSlogLogger(&out, common.LogFormatText, common.SeverityWarning))

	run(t, d, sequence(usbmontest.VendorWrite(1, 0x101c, 0, usbmontest.Word(0x00004205))))
	if !strings.Contains(out.String(), "MISSING_KICK") || !strings.Contains(out.String(), "level=WARN") {
		t.Errorf("log = %q, want a missing kick warning", out.String())
	}
}

func TestDecoderDeviceFilter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Filter = &pairing.DeviceFilter{Bus: 1, Device: 3}
	d, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	// usbmontest events come from device 2
	if recs := run(t, d, sequence(usbmontest.VendorRead(1, 0x1000, usbmontest.Word(0)))); len(recs) != 0 {
		t.Errorf("records = %v, want none for another device", recs)
	}
}

func TestDecodeCaptureFile(t *testing.T) {
	events := sequence(
		usbmontest.VendorRead(0x10, 0x1000, usbmontest.Word(0x30710200)),
		usbmontest.VendorWrite(0x11, 0x0208, 0x0055, nil),
	)
	var buf bytes.Buffer
	if err := usbmontest.WriteCapture(&buf, usbmon.LinkTypeUSBLinuxMmapped, events); err != nil {
		t.Fatal(err)
	}
	src, err := usbmon.NewCaptureSource(&buf)
	if err != nil {
		t.Fatalf("NewCaptureSource() = %v", err)
	}
	defer src.Close()

	d := newDecoder(t)
	var recs []common.Record
	for {
		ev, err := src.Next(context.Background())
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() = %v", err)
		}
		recs = append(recs, d.ProcessEvent(ev)...)
	}

	want := []common.Record{
		{Type: common.RecordRegisterRead, Seq: 2, Dir: common.DirIn, Register: common.RegisterAccess{
			Offset: 0x1000, Name: "ASIC_VER_ID", Value: 0x30710200,
		}},
		{Type: common.RecordRegisterWrite, Seq: 4, Dir: common.DirOut, Register: common.RegisterAccess{
			Offset: 0x0208, Name: "WPDMA_GLO_CFG", Width: common.WidthLower, Value: 0x55,
		}},
	}
	opts := cmp.Options{cmpopts.IgnoreFields(common.RegisterAccess{}, "Fields")}
	if diff := cmp.Diff(want, recs, opts); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsBadCatalog(t *testing.T) {
	bad := registers.New([]registers.Register{
		{Offset: 0x1000, Name: "BROKEN", Fields: []registers.Field{
			{High: 31, Low: 8, Name: "A"},
			{High: 6, Low: 0, Name: "B"},
		}},
	}, nil, nil)
	if _, err := NewWithCatalog(bad, DefaultConfig()); !errors.Is(err, common.ErrConfiguration) {
		t.Errorf("NewWithCatalog() = %v, want configuration error", err)
	}
}

func TestLoadConfig(t *testing.T) {
	const ini = `
[pairing]
max_pending = 16

[device]
bus = 3
address = 7

[rf]
addr_mask = 0x1f

[mailbox]
status = 0x7020

[bulk]
tx_align = 8
`
	path := filepath.Join(t.TempDir(), "rt3070.ini")
	if err := os.WriteFile(path, []byte(ini), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}

	want := DefaultConfig()
	want.MaxPending = 16
	want.Filter = &pairing.DeviceFilter{Bus: 3, Device: 7}
	want.Channels.RF.AddrMask = 0x1f
	want.Channels.Mailbox.Status = 0x7020
	want.TxAlign = 8
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
	if _, err := New(cfg); err != nil {
		t.Errorf("New(loaded config) = %v", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		ini  string
	}{
		{"bad number", "[bbp]\nlow = 0x1g\n"},
		{"address too wide", "[device]\naddress = 300\n"},
		{"bad bool", "[rf]\nread_when_set = sometimes\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.ini")
			if err := os.WriteFile(path, []byte(tt.ini), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); !errors.Is(err, common.ErrConfiguration) {
				t.Errorf("LoadConfig() = %v, want configuration error", err)
			}
		})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Channels.Mailbox.Command = cfg.Channels.Mailbox.Status
	if _, err := New(cfg); !errors.Is(err, common.ErrConfiguration) {
		t.Errorf("New() = %v, want configuration error", err)
	}
	cfg = DefaultConfig()
	cfg.TxAlign = 6
	if _, err := New(cfg); !errors.Is(err, common.ErrConfiguration) {
		t.Errorf("New(tx_align 6) = %v, want configuration error", err)
	}
}
