package policy

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/osready/osready/internal/facts"
)

func TestParseStringDefaults(t *testing.T) {
	tests := []struct {
		name string
		lua  string
	}{
		{"empty source", ""},
		{"no osready table", "local x = 1"},
		{"empty osready table", "osready = {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pol, err := NewParser().ParseString(tt.lua, nil)
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}
			if !reflect.DeepEqual(pol, Default()) {
				t.Errorf("ParseString() = %+v, want defaults", pol)
			}
		})
	}
}

func TestParseStringFullPolicy(t *testing.T) {
	const src = `
osready = {
    mode = "gui-soft",
    memory_min_mb = 8192,
    memory_check = "physical",
    retrieval_failure = "abort",
    manufacturers = { "Intel", "AMD" },
    urls = {
        Intel = "https://example.com/intel",
    },
    dialog = {
        organization = "Example Corp",
        title = "Upgrade blocked",
        error_code = 73,
        timeout_sec = 120,
        reboot = true,
        step = "precheck",
    },
}`

	pol, err := NewParser().ParseString(src, nil)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if pol.Mode != ModeGUISoft {
		t.Errorf("Mode = %q, want gui-soft", pol.Mode)
	}
	if pol.MemoryMinMB != 8192 {
		t.Errorf("MemoryMinMB = %d, want 8192", pol.MemoryMinMB)
	}
	if pol.MemoryCheck != MemoryPhysical {
		t.Errorf("MemoryCheck = %q, want physical", pol.MemoryCheck)
	}
	if pol.RetrievalFailure != RetrievalAbort {
		t.Errorf("RetrievalFailure = %q, want abort", pol.RetrievalFailure)
	}
	if want := []string{"Intel", "AMD"}; !reflect.DeepEqual(pol.Manufacturers, want) {
		t.Errorf("Manufacturers = %v, want %v", pol.Manufacturers, want)
	}
	if pol.URLs["Intel"] != "https://example.com/intel" {
		t.Errorf("URLs[Intel] = %q", pol.URLs["Intel"])
	}

	// Dialog fields not named in the file keep their defaults.
	if pol.Dialog.Organization != "Example Corp" || pol.Dialog.ErrorCode != 73 ||
		pol.Dialog.TimeoutSec != 120 || !pol.Dialog.Reboot || pol.Dialog.Step != "precheck" {
		t.Errorf("Dialog = %+v", pol.Dialog)
	}
	if pol.Dialog.Package != Default().Dialog.Package {
		t.Errorf("Dialog.Package = %q, want default", pol.Dialog.Package)
	}
}

func TestParseStringConditionalOnFacts(t *testing.T) {
	const src = `
osready = {}
if facts.is_vm then
    osready.memory_check = "off"
else
    osready.memory_min_mb = facts.memory_mb
end`

	vmPol, err := NewParser().ParseString(src, &facts.Facts{IsVM: true})
	if err != nil {
		t.Fatalf("ParseString(vm) error = %v", err)
	}
	if vmPol.MemoryCheck != MemoryOff {
		t.Errorf("vm MemoryCheck = %q, want off", vmPol.MemoryCheck)
	}

	physPol, err := NewParser().ParseString(src, &facts.Facts{MemoryMB: 16384})
	if err != nil {
		t.Fatalf("ParseString(physical) error = %v", err)
	}
	if physPol.MemoryMinMB != 16384 {
		t.Errorf("physical MemoryMinMB = %d, want 16384", physPol.MemoryMinMB)
	}
}

func TestParseStringFactsReadOnly(t *testing.T) {
	_, err := NewParser().ParseString(`facts.is_vm = false`, &facts.Facts{IsVM: true})
	if err == nil {
		t.Fatal("writing to facts table did not fail")
	}
}

func TestParseStringErrors(t *testing.T) {
	tests := []struct {
		name string
		lua  string
	}{
		{"syntax error", "osready = {"},
		{"osready not a table", `osready = "yes"`},
		{"invalid mode", `osready = { mode = "loud" }`},
		{"invalid memory scope", `osready = { memory_check = "sometimes" }`},
		{"invalid retrieval policy", `osready = { retrieval_failure = "retry" }`},
		{"empty allowlist", `osready = { manufacturers = {} }`},
		{"sandbox blocks os", `osready = {} os.exit(1)`},
		{"sandbox blocks io", `osready = {} io.open("/etc/passwd")`},
		{"sandbox blocks require", `require("socket")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseString(tt.lua, nil)
			if err == nil {
				t.Fatalf("ParseString(%q) expected error", tt.lua)
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("error type = %T, want *ParseError", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		pol, err := NewParser().Load(filepath.Join(t.TempDir(), "absent.lua"), nil)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !reflect.DeepEqual(pol, Default()) {
			t.Errorf("Load() = %+v, want defaults", pol)
		}
	})

	t.Run("existing file is parsed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "osready.lua")
		if err := os.WriteFile(path, []byte(`osready = { mode = "gui-hard" }`), 0o600); err != nil {
			t.Fatal(err)
		}

		pol, err := NewParser().Load(path, nil)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if pol.Mode != ModeGUIHard {
			t.Errorf("Mode = %q, want gui-hard", pol.Mode)
		}
	})
}

func TestMemoryCheckApplies(t *testing.T) {
	tests := []struct {
		scope        MemoryScope
		vm, physical bool
	}{
		{MemoryBoth, true, true},
		{MemoryPhysical, false, true},
		{MemoryVM, true, false},
		{MemoryOff, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			p := &Policy{MemoryCheck: tt.scope}
			if got := p.MemoryCheckApplies(true); got != tt.vm {
				t.Errorf("MemoryCheckApplies(vm) = %v, want %v", got, tt.vm)
			}
			if got := p.MemoryCheckApplies(false); got != tt.physical {
				t.Errorf("MemoryCheckApplies(physical) = %v, want %v", got, tt.physical)
			}
		})
	}
}

func TestValidateDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Message: "policy validation failed", Detail: "invalid mode"}
	if !strings.Contains(err.Error(), "policy validation failed") ||
		!strings.Contains(err.Error(), "invalid mode") {
		t.Errorf("Error() = %q", err.Error())
	}
}
