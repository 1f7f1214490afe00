package scriptline_test

import (
	"math"
	"testing"

	"github.com/vsariola/scriptline"
	"gopkg.in/yaml.v3"
)

func TestNumberDecoding(t *testing.T) {
	tests := []struct {
		in    string
		set   bool
		valid bool
		value float64
	}{
		{"v: 2", true, true, 2},
		{"v: -0.5", true, true, -0.5},
		{`v: "3.25"`, true, true, 3.25},
		{`v: " 7 "`, true, true, 7},
		{"v: loud", true, false, 0},
		{`v: ""`, true, false, 0},
		{"v: true", true, false, 0},
		{"v: [1, 2]", true, false, 0},
		{"v: .nan", true, false, 0},
		{"v: null", false, false, 0},
		{"other: 1", false, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var doc struct {
				V scriptline.Number `yaml:"v"`
			}
			if err := yaml.Unmarshal([]byte(tt.in), &doc); err != nil {
				t.Fatal(err)
			}
			if doc.V.IsSet() != tt.set || doc.V.Valid() != tt.valid {
				t.Fatalf("got set %v valid %v, want %v %v", doc.V.IsSet(), doc.V.Valid(), tt.set, tt.valid)
			}
			if v, _ := doc.V.Float(); tt.valid && v != tt.value {
				t.Errorf("got %v, want %v", v, tt.value)
			}
		})
	}
}

func TestNumberFallback(t *testing.T) {
	if got := scriptline.Num(3).Or(1); got != 3 {
		t.Errorf("valid number: got %v", got)
	}
	if got := scriptline.ParseNumber("x").Or(1); got != 1 {
		t.Errorf("invalid number: got %v", got)
	}
	if got := (scriptline.Number{}).Or(1); got != 1 {
		t.Errorf("unset number: got %v", got)
	}
	if scriptline.Num(math.Inf(1)).Valid() || scriptline.Num(math.NaN()).Valid() {
		t.Errorf("non-finite numbers should be invalid")
	}
	if n := scriptline.ParseNumber("  "); n.IsSet() {
		t.Errorf("blank input should be unset")
	}
}
