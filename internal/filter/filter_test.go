package filter

import (
	"errors"
	"testing"

	"rt2x00dump/common"
)

func TestMatch(t *testing.T) {
	sysCtrl := common.NewRegisterRecord(common.DirOut, common.RegisterAccess{
		Offset: 0x1004,
		Name:   "MAC_SYS_CTRL",
		Value:  0x0c,
		Fields: []common.FieldValue{{Name: "MAC_RX_EN", Value: 1}, {Name: "MAC_TX_EN", Value: 1}},
	})
	sysCtrl.Seq = 40
	bbp := common.NewRegisterRecord(common.DirIn, common.RegisterAccess{Bank: "BBP", Offset: 0x42, Value: 0xab})
	mcu := common.Record{Type: common.RecordMcuCommand, Command: common.McuCommand{Opcode: 0x30, Token: 0xff, Owner: 1}}
	warn := common.NewAnomaly(common.NewError(common.CodeOutOfSequence, 3, "x"))
	frame := common.Record{Type: common.RecordFrame, Frame: common.FrameInfo{
		Kind:       common.FrameRX,
		BodyLength: 32,
		Headers:    []common.HeaderWord{{Name: "RXINFO", Fields: []common.FieldValue{{Name: "RX_PKT_LEN", Value: 32}}}},
	}}

	tests := []struct {
		expr string
		rec  common.Record
		want bool
	}{
		{`type == "REG_WRITE" and name == "MAC_SYS_CTRL"`, sysCtrl, true},
		{`fields.MAC_RX_EN == 1 and seq > 10`, sysCtrl, true},
		{`bank == "BBP"`, sysCtrl, false},
		{`bank == "BBP" and offset >= 0x40 and dir == "READ"`, bbp, true},
		{`name`, bbp, false},
		{`opcode == 0x30 and token == 255`, mcu, true},
		{`type == "ANOMALY" and code == "OUT_OF_SEQUENCE" and severity == "WARNING"`, warn, true},
		{`fields["RXINFO.RX_PKT_LEN"] == 32 and kind == "RX"`, frame, true},
		{`string.find(text, "MAC_SYS") ~= nil`, sysCtrl, true},
		{`offset`, mcu, false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := New(tt.expr)
			if err != nil {
				t.Fatalf("New() = %v", err)
			}
			defer f.Close()
			got, err := f.Match(&tt.rec)
			if err != nil {
				t.Fatalf("Match() = %v", err)
			}
			if got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	f, err := New(`bank == "RF"`)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := f.String(); got != `bank == "RF"` {
		t.Errorf("String() = %q", got)
	}
}

func TestGlobalsDoNotLeak(t *testing.T) {
	f, err := New(`name == nil`)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	named := common.NewRegisterRecord(common.DirIn, common.RegisterAccess{Name: "ASIC_VER_ID"})
	mcu := common.Record{Type: common.RecordMcuCommand}
	for _, c := range []struct {
		rec  common.Record
		want bool
	}{{named, false}, {mcu, true}} {
		if got, err := f.Match(&c.rec); err != nil || got != c.want {
			t.Errorf("Match(%s) = %v, %v; want %v", c.rec.Type, got, err, c.want)
		}
	}
}

func TestCompileError(t *testing.T) {
	if _, err := New(`type ==`); !errors.Is(err, common.ErrConfiguration) {
		t.Errorf("New() = %v, want configuration error", err)
	}
}

func TestRuntimeError(t *testing.T) {
	f, err := New(`value + nil`)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rec := common.NewRegisterRecord(common.DirIn, common.RegisterAccess{Value: 1})
	if _, err := f.Match(&rec); err == nil {
		t.Error("Match() succeeded, want a runtime error")
	}
}

func TestSandbox(t *testing.T) {
	f, err := New(`os.exit(1)`)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rec := common.Record{}
	if _, err := f.Match(&rec); err == nil {
		t.Error("Match() reached the os library")
	}
}
