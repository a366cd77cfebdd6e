package cpuid

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Identity
	}{
		{
			"intel core with markers and clock",
			"Intel(R) Core(TM) i7-10700K CPU @ 3.80GHz",
			Identity{"Intel", "Core", "i7-10700K"},
		},
		{
			"intel core 11th gen prefix",
			"11th Gen Intel(R) Core(TM) i5-1135G7 @ 2.40GHz",
			Identity{"Intel", "Core", "i5-1135G7"},
		},
		{
			"intel xeon",
			"Intel(R) Xeon(R) Gold 6230 CPU @ 2.10GHz",
			Identity{"Intel", "Xeon", "Gold 6230"},
		},
		{
			"intel sub-brand without manufacturer token",
			"Pentium G4560",
			Identity{"Intel", "Pentium", "G4560"},
		},
		{
			"intel atom",
			"Intel(R) Atom(TM) x5-Z8350 CPU @ 1.44GHz",
			Identity{"Intel", "Atom", "x5-Z8350"},
		},
		{
			"amd ryzen tier with core suffix",
			"AMD Ryzen 5 3600 6-Core Processor",
			Identity{"AMD", "Ryzen 5", "3600"},
		},
		{
			"amd ryzen pro tier",
			"AMD Ryzen 5 PRO 4650G 6-Core Processor",
			Identity{"AMD", "Ryzen 5 PRO", "4650G"},
		},
		{
			"amd ryzen threadripper",
			"AMD Ryzen Threadripper 3970X 32-Core Processor",
			Identity{"AMD", "Ryzen Threadripper", "3970X"},
		},
		{
			"amd ryzen threadripper pro",
			"AMD Ryzen Threadripper PRO 3995WX 64-Core Processor",
			Identity{"AMD", "Ryzen Threadripper PRO", "3995WX"},
		},
		{
			"amd ryzen embedded",
			"AMD Ryzen Embedded V1605B",
			Identity{"AMD", "Ryzen Embedded", "V1605B"},
		},
		{
			"amd athlon II",
			"AMD Athlon II X2 250",
			Identity{"AMD", "Athlon II", "X2 250"},
		},
		{
			"amd athlon without II stays split",
			"AMD Athlon 3000G",
			Identity{"AMD", "Athlon", "3000G"},
		},
		{
			"intel n-series single token",
			"Intel(R) N4500",
			Identity{"Intel", "N-series", "N4500"},
		},
		{
			"amd a-series single token",
			"AMD A8-7600",
			Identity{"AMD", "A-series", "A8-7600"},
		},
		{
			"qualcomm snapdragon",
			"Qualcomm Snapdragon 8cx Gen 3",
			Identity{"Qualcomm", "Snapdragon", "8cx Gen 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeFailure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"unknown manufacturer", "VIA Nano X2 L4350"},
		{"manufacturer only", "Intel"},
		{"single token with no series match", "Intel(R) i7-10700K"},
		{"amd single token not a-series", "AMD EPYC"},
		{"whitespace only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err == nil {
				t.Fatalf("Normalize(%q) = %+v, want error", tt.raw, got)
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Normalize(%q) error type = %T, want *ParseError", tt.raw, err)
			}
			if parseErr.Raw != tt.raw {
				t.Errorf("ParseError.Raw = %q, want %q", parseErr.Raw, tt.raw)
			}

			// All-or-nothing: a failed parse never leaks a partial identity.
			if got != (Identity{}) {
				t.Errorf("Normalize(%q) returned partial identity %+v on failure", tt.raw, got)
			}
		})
	}
}

func TestNormalizeIsPure(t *testing.T) {
	raw := "AMD Ryzen 7 5800X 8-Core Processor"

	first, err1 := Normalize(raw)
	second, err2 := Normalize(raw)

	if err1 != nil || err2 != nil {
		t.Fatalf("Normalize errors = %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("Normalize not deterministic: %+v vs %+v", first, second)
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trademark markers", "Intel(R) Core(TM) i3-8100", "Intel Core i3-8100"},
		{"unicode markers", "Intel® Core™ i3-8100", "Intel Core i3-8100"},
		{"cpu suffix", "Intel Core i3-8100 CPU", "Intel Core i3-8100"},
		{"clock suffix", "Intel Core i3-8100 @ 3.60GHz", "Intel Core i3-8100"},
		{"gen prefix", "12th Gen Intel Core i5-12400", "Intel Core i5-12400"},
		{"core count suffix", "AMD Ryzen 5 3600 6-Core Processor", "AMD Ryzen 5 3600"},
		{"no noise", "Qualcomm Snapdragon 8cx", "Qualcomm Snapdragon 8cx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanup(tt.input); got != tt.want {
				t.Errorf("cleanup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectManufacturer(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantMan       string
		wantRemainder string
	}{
		{"explicit intel removed", "Intel Core i7-10700K", "Intel", "Core i7-10700K"},
		{"explicit amd removed", "AMD Ryzen 5 3600", "AMD", "Ryzen 5 3600"},
		{"explicit qualcomm removed", "Qualcomm Snapdragon 7c", "Qualcomm", "Snapdragon 7c"},
		{"trailing token removed", "Genuine Intel", "Intel", "Genuine"},
		{"sub-brand inferred not removed", "Xeon Gold 6230", "Intel", "Xeon Gold 6230"},
		{"core inferred", "Core i5-8250U", "Intel", "Core i5-8250U"},
		{"unresolved", "SiFive U74", "", "SiFive U74"},
		{"substring is not a token", "Intellivision X1", "", "Intellivision X1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			man, remainder := detectManufacturer(tt.input)
			if man != tt.wantMan || remainder != tt.wantRemainder {
				t.Errorf("detectManufacturer(%q) = (%q, %q), want (%q, %q)",
					tt.input, man, remainder, tt.wantMan, tt.wantRemainder)
			}
		})
	}
}

func TestSplitBrandModel(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantBrand string
		wantModel string
	}{
		{"two tokens", "Core i7-10700K", "Core", "i7-10700K"},
		{"many tokens", "Snapdragon 8cx Gen 3", "Snapdragon", "8cx Gen 3"},
		{"single token yields nothing", "N4500", "", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand, model := splitBrandModel(tt.input)
			if brand != tt.wantBrand || model != tt.wantModel {
				t.Errorf("splitBrandModel(%q) = (%q, %q), want (%q, %q)",
					tt.input, brand, model, tt.wantBrand, tt.wantModel)
			}
		})
	}
}
