package policy

import (
	"github.com/osready/osready/internal/facts"
	lua "github.com/yuin/gopher-lua"
)

// injectFactsTable exposes the observed platform facts to the policy as a
// read-only global `facts` table. This runs before the policy file, so a
// policy can condition on the platform, e.g.:
//
//	if facts.is_vm then
//	    osready.memory_check = "off"
//	end
func injectFactsTable(L *lua.LState, f *facts.Facts) {
	t := L.NewTable()

	L.SetField(t, "booted_uefi", lua.LBool(f.BootedUEFI))
	L.SetField(t, "secure_boot", lua.LBool(f.SecureBoot))
	L.SetField(t, "tpm_active", lua.LBool(f.TPMActive))
	L.SetField(t, "tpm_enabled", lua.LBool(f.TPMEnabled))
	L.SetField(t, "tpm_v2", lua.LBool(f.TPMIsV2))
	L.SetField(t, "memory_mb", lua.LNumber(f.MemoryMB))
	L.SetField(t, "is_vm", lua.LBool(f.IsVM))
	L.SetField(t, "processor", lua.LString(f.RawProcessor))

	L.SetGlobal("facts", makeReadOnly(L, t))
}

// makeReadOnly wraps a table in a write-rejecting proxy. Reads pass through
// to the original table; any write raises a Lua error, and the metatable
// itself is protected.
func makeReadOnly(L *lua.LState, table *lua.LTable) *lua.LTable {
	mt := L.NewTable()
	L.SetField(mt, "__index", table)
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("facts table is read-only and cannot be modified")
		return 0
	}))
	L.SetField(mt, "__metatable", lua.LString("protected"))

	proxy := L.NewTable()
	L.SetMetatable(proxy, mt)
	return proxy
}
