package policy

import (
	"fmt"
	"os"

	"github.com/osready/osready/internal/facts"
	lua "github.com/yuin/gopher-lua"
)

// Parser evaluates policy files in a sandboxed Lua VM.
type Parser struct{}

// NewParser creates a policy parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseError represents a policy parsing error with a friendly message.
type ParseError struct {
	Message string // user-friendly message
	Detail  string // technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// Load reads a policy file. A missing file is not an error: every setting
// has a default, so the zero-configuration run uses Default().
func (p *Parser) Load(path string, f *facts.Facts) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return p.ParseString(string(data), f)
}

// ParseString parses a policy from Lua source. The facts table is injected
// first (when facts are provided) so the policy can be conditional on the
// observed platform.
func (p *Parser) ParseString(luaCode string, f *facts.Facts) (*Policy, error) {
	L := newSandboxedVM()
	defer L.Close()

	if f != nil {
		injectFactsTable(L, f)
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractPolicy(L)
}

// extractPolicy reads the global "osready" table into a Policy, starting
// from defaults so a policy file only needs to name what it changes. A
// policy that defines no osready table at all is treated as all-defaults.
func extractPolicy(L *lua.LState) (*Policy, error) {
	pol := Default()

	global := L.GetGlobal("osready")
	if global.Type() == lua.LTNil {
		return pol, nil
	}
	table, ok := global.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: "invalid 'osready' global",
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}

	if v := table.RawGetString("mode"); v.Type() == lua.LTString {
		pol.Mode = Mode(v.String())
	}
	if v := table.RawGetString("memory_min_mb"); v.Type() == lua.LTNumber {
		pol.MemoryMinMB = uint64(lua.LVAsNumber(v))
	}
	if v := table.RawGetString("memory_check"); v.Type() == lua.LTString {
		pol.MemoryCheck = MemoryScope(v.String())
	}
	if v := table.RawGetString("retrieval_failure"); v.Type() == lua.LTString {
		pol.RetrievalFailure = RetrievalPolicy(v.String())
	}
	if v := table.RawGetString("manufacturers"); v.Type() == lua.LTTable {
		pol.Manufacturers = extractStrings(v.(*lua.LTable))
	}
	if v := table.RawGetString("urls"); v.Type() == lua.LTTable {
		pol.URLs = extractStringMap(v.(*lua.LTable))
	}
	if v := table.RawGetString("dialog"); v.Type() == lua.LTTable {
		extractDialog(v.(*lua.LTable), &pol.Dialog)
	}

	if err := pol.Validate(); err != nil {
		return nil, &ParseError{
			Message: "policy validation failed",
			Detail:  err.Error(),
		}
	}

	return pol, nil
}

// extractStrings collects the string entries of a Lua array, skipping nil
// holes left by conditional expressions.
func extractStrings(table *lua.LTable) []string {
	var out []string
	table.ForEach(func(_, value lua.LValue) {
		if value.Type() == lua.LTString {
			out = append(out, value.String())
		}
	})
	return out
}

// extractStringMap collects the string-keyed string entries of a Lua table.
func extractStringMap(table *lua.LTable) map[string]string {
	out := make(map[string]string)
	table.ForEach(func(key, value lua.LValue) {
		if key.Type() == lua.LTString && value.Type() == lua.LTString {
			out[key.String()] = value.String()
		}
	})
	return out
}

// extractDialog overlays dialog settings onto the defaults.
func extractDialog(table *lua.LTable, d *Dialog) {
	if v := table.RawGetString("organization"); v.Type() == lua.LTString {
		d.Organization = v.String()
	}
	if v := table.RawGetString("package"); v.Type() == lua.LTString {
		d.Package = v.String()
	}
	if v := table.RawGetString("title"); v.Type() == lua.LTString {
		d.Title = v.String()
	}
	if v := table.RawGetString("message"); v.Type() == lua.LTString {
		d.Message = v.String()
	}
	if v := table.RawGetString("error_code"); v.Type() == lua.LTNumber {
		d.ErrorCode = int(lua.LVAsNumber(v))
	}
	if v := table.RawGetString("timeout_sec"); v.Type() == lua.LTNumber {
		d.TimeoutSec = int(lua.LVAsNumber(v))
	}
	if v := table.RawGetString("reboot"); v.Type() == lua.LTBool {
		d.Reboot = lua.LVAsBool(v)
	}
	if v := table.RawGetString("step"); v.Type() == lua.LTString {
		d.Step = v.String()
	}
}
