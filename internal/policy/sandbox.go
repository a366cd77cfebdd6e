package policy

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxLuaVM strips a Lua VM down to what a declarative policy needs.
// Policies must not execute commands, touch the filesystem, or load external
// code; the string, table, and math libraries plus the basic utilities
// (type, tostring, tonumber, pairs, ipairs) remain available.
func sandboxLuaVM(L *lua.LState) {
	L.SetGlobal("os", lua.LNil)
	L.SetGlobal("io", lua.LNil)

	L.SetGlobal("require", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)

	// debug could be used to reach around the sandbox.
	L.SetGlobal("debug", lua.LNil)
}

// newSandboxedVM creates the Lua state policy files are evaluated in.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxLuaVM(L)
	return L
}
