package main

import (
	"math"
	"testing"

	"github.com/san-kum/qmlab/internal/experiment"
	"github.com/spf13/cobra"
)

func newCalcCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "calc"}
	addInputFlags(cmd, 100)
	for k, v := range flags {
		if err := cmd.Flags().Set(k, v); err != nil {
			t.Fatalf("set --%s: %v", k, err)
		}
	}
	return cmd
}

func TestEvaluate_FlagUnits(t *testing.T) {
	cmd := newCalcCmd(t, map[string]string{"length": "5", "length-unit": "nm", "n": "2"})
	res, inputs, err := evaluate(cmd, "box")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Params["length"]-5e-9) > 1e-21 {
		t.Errorf("length = %g", res.Params["length"])
	}
	if res.Params["n"] != 2 {
		t.Errorf("n = %g", res.Params["n"])
	}
	if inputs[0].name != "length" || inputs[0].res.Unit != "nm" {
		t.Errorf("first input = %+v", inputs[0])
	}
}

func TestEvaluate_SIWithoutUnit(t *testing.T) {
	cmd := newCalcCmd(t, map[string]string{"voltage": "150"})
	res, _, err := evaluate(cmd, "electron")
	if err != nil {
		t.Fatal(err)
	}
	if res.Results[0].Name != "approx" || math.Abs(res.Results[0].Value-1.0018) > 1e-3 {
		t.Errorf("approx = %+v", res.Results[0])
	}
}

func TestEvaluate_Preset(t *testing.T) {
	cmd := newCalcCmd(t, map[string]string{"preset": "ex20.8"})
	res, _, err := evaluate(cmd, "tunnel")
	if err != nil {
		t.Fatal(err)
	}
	if res.Params["width"] != 2e-9 {
		t.Errorf("width = %g", res.Params["width"])
	}

	cmd = newCalcCmd(t, map[string]string{"preset": "ex20.8", "width": "1", "width-unit": "nm"})
	narrow, _, err := evaluate(cmd, "tunnel")
	if err != nil {
		t.Fatal(err)
	}
	if narrow.Results[0].Value <= res.Results[0].Value {
		t.Error("explicit flag should override the preset width")
	}
}

func TestEvaluate_Target(t *testing.T) {
	cmd := newCalcCmd(t, map[string]string{"target": "velocity", "wavelength": "1", "wavelength-unit": "Å"})
	res, inputs, err := evaluate(cmd, "debroglie")
	if err != nil {
		t.Fatal(err)
	}
	if res.Results[0].Name != "velocity" {
		t.Errorf("result = %s", res.Results[0].Name)
	}
	if len(inputs) != 2 || inputs[0].name != "wavelength" {
		t.Errorf("inputs = %+v", inputs)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	if _, _, err := evaluate(newCalcCmd(t, nil), "nope"); err == nil {
		t.Error("expected unknown topic error")
	}
	if _, _, err := evaluate(newCalcCmd(t, map[string]string{"preset": "nope"}), "box"); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestParamNames(t *testing.T) {
	names := paramNames(experiment.NewRegistry())
	seen := make(map[string]bool)
	for i, n := range names {
		if seen[n] {
			t.Errorf("duplicate %s", n)
		}
		seen[n] = true
		if i > 0 && names[i-1] > n {
			t.Error("names not sorted")
		}
	}
	for _, want := range []string{"mass", "n_final", "delta_x", "alpha", "k1"} {
		if !seen[want] {
			t.Errorf("missing %s", want)
		}
	}
	if flagName("n_final") != "n-final" {
		t.Error("flag names use dashes")
	}
}
