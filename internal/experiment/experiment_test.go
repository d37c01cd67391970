package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/qmlab/internal/quantum"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	names := r.ListTopics()
	if len(names) != 8 || names[0] != "debroglie" {
		t.Errorf("unexpected topics %v", names)
	}
	for _, name := range names {
		tp, err := r.GetTopic(name)
		if err != nil {
			t.Fatalf("GetTopic(%s): %v", name, err)
		}
		if tp.Name() != name {
			t.Errorf("topic registered as %s reports %s", name, tp.Name())
		}
	}
	if _, err := r.GetTopic("string_theory"); !errors.Is(err, quantum.ErrUnknownTopic) {
		t.Errorf("expected ErrUnknownTopic, got %v", err)
	}
}

func TestRegistry_ReturnsFreshTopics(t *testing.T) {
	r := NewRegistry()
	a, _ := r.GetTopic("box")
	_ = a.SetParam("n", 5)
	b, _ := r.GetTopic("box")
	if b.GetParams()["n"] != 1 {
		t.Error("topics from the registry should not share state")
	}
}

func TestExperiment_Run(t *testing.T) {
	r := NewRegistry()
	tp, _ := r.GetTopic("box")

	exp := New(Config{Topic: "box", Params: map[string]float64{"n": 2, "length": 2e-9}, Points: 50})
	if err := exp.Setup(tp); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Params["n"] != 2 || res.Params["length"] != 2e-9 {
		t.Errorf("params not applied: %v", res.Params)
	}
	if len(res.Series) != 2 || len(res.Series[0].X) != 50 {
		t.Errorf("unexpected series shape")
	}
}

func TestExperiment_Target(t *testing.T) {
	r := NewRegistry()

	tp, _ := r.GetTopic("debroglie")
	exp := New(Config{Target: quantum.TargetVoltage})
	if err := exp.Setup(tp); err != nil {
		t.Fatal(err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Results[0].Name != quantum.TargetVoltage {
		t.Errorf("expected voltage result, got %s", res.Results[0].Name)
	}

	tp, _ = r.GetTopic("qubit")
	if err := New(Config{Target: "alpha"}).Setup(tp); err == nil {
		t.Error("expected an error setting a target on a topic without targets")
	}
}

func TestExperiment_Errors(t *testing.T) {
	if _, err := New(Config{}).Run(context.Background()); err == nil {
		t.Error("expected error running without setup")
	}

	tp, _ := NewRegistry().GetTopic("qubit")
	exp := New(Config{Params: map[string]float64{"beta": 1}})
	if err := exp.Setup(tp); !errors.Is(err, quantum.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	exp = New(Config{})
	_ = exp.Setup(tp)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := exp.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
