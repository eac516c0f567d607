// Package filter selects records with a Lua expression. The expression is
// evaluated once per record with the record's fields as globals, e.g.
//
//	type == "REG_WRITE" and name == "MAC_SYS_CTRL"
//	bank == "BBP" and offset >= 0x40
//	type == "ANOMALY" or fields.MAC_RX_EN == 1
package filter

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"rt2x00dump/common"
)

// Filter holds a compiled expression and its interpreter. It is not safe
// for concurrent use.
type Filter struct {
	expr  string
	state *lua.LState
	fn    *lua.LFunction
}

// New compiles expr. Only the base, string and math libraries are loaded.
func New(expr string) (*Filter, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("filter: open %s library: %w", lib.name, err)
		}
	}

	fn, err := L.LoadString("return (" + expr + ")")
	if err != nil {
		L.Close()
		return nil, common.ConfigErrorf("filter %q: %v", expr, err)
	}
	return &Filter{expr: expr, state: L, fn: fn}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.expr }

// Match evaluates the expression for rec. Lua truthiness applies: nil and
// false reject, everything else accepts.
func (f *Filter) Match(rec *common.Record) (bool, error) {
	f.bind(rec)
	f.state.Push(f.fn)
	if err := f.state.PCall(0, 1, nil); err != nil {
		return false, fmt.Errorf("filter %q at seq %d: %w", f.expr, rec.Seq, err)
	}
	ret := f.state.Get(-1)
	f.state.Pop(1)
	return lua.LVAsBool(ret), nil
}

// Close releases the interpreter.
func (f *Filter) Close() {
	f.state.Close()
}

// bind publishes the record as globals. Globals of other record types are
// reset to nil so they cannot leak between records.
func (f *Filter) bind(rec *common.Record) {
	L := f.state
	set := func(name string, v lua.LValue) { L.SetGlobal(name, v) }
	num := func(v uint64) lua.LValue { return lua.LNumber(v) }

	for _, name := range []string{
		"bank", "name", "offset", "value", "width", "fields",
		"opcode", "token", "owner", "arg0", "arg1",
		"area", "length", "kind", "endpoint", "code", "severity",
	} {
		set(name, lua.LNil)
	}

	set("type", lua.LString(rec.Type.String()))
	set("seq", num(rec.Seq))
	set("dir", lua.LString(rec.Dir.String()))
	set("text", lua.LString(rec.Description()))

	switch rec.Type {
	case common.RecordRegisterRead, common.RecordRegisterWrite:
		r := &rec.Register
		if r.Bank != "" {
			set("bank", lua.LString(r.Bank))
		}
		if r.Name != "" {
			set("name", lua.LString(r.Name))
		}
		set("offset", num(uint64(r.Offset)))
		set("value", num(uint64(r.Value)))
		set("width", lua.LString(r.Width.String()))
		fields := L.NewTable()
		for _, fv := range r.Fields {
			L.SetField(fields, fv.Name, lua.LNumber(fv.Value))
		}
		set("fields", fields)

	case common.RecordMcuCommand:
		c := rec.Command
		set("opcode", num(uint64(c.Opcode)))
		set("token", num(uint64(c.Token)))
		set("owner", num(uint64(c.Owner)))
		set("arg0", num(uint64(c.Arg0)))
		set("arg1", num(uint64(c.Arg1)))

	case common.RecordRawAreaAccess:
		set("offset", num(uint64(rec.Area.Offset)))
		set("area", lua.LString(rec.Area.Area))
		set("length", num(uint64(rec.Area.Length)))

	case common.RecordControl:
		set("offset", num(uint64(rec.Control.Index)))
		set("value", num(uint64(rec.Control.Value)))
		set("length", num(uint64(rec.Control.Length)))

	case common.RecordTransfer:
		set("kind", lua.LString(rec.Transfer.Kind))
		set("endpoint", num(uint64(rec.Transfer.Endpoint)))
		set("length", num(uint64(rec.Transfer.Length)))

	case common.RecordFrame:
		set("kind", lua.LString(rec.Frame.Kind.String()))
		set("offset", num(uint64(rec.Frame.Offset)))
		set("length", num(uint64(rec.Frame.BodyLength)))
		fields := L.NewTable()
		for _, h := range rec.Frame.Headers {
			for _, fv := range h.Fields {
				L.SetField(fields, h.Name+"."+fv.Name, lua.LNumber(fv.Value))
			}
		}
		set("fields", fields)

	case common.RecordAnomaly:
		if rec.Err != nil {
			set("code", lua.LString(rec.Err.Code.String()))
			set("severity", lua.LString(rec.Err.Severity().String()))
		}
	}
}
