package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/san-kum/qmlab/internal/config"
	"github.com/san-kum/qmlab/internal/experiment"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSweep indicates a sweep that cannot produce any samples.
var ErrInvalidSweep = errors.New("automation: invalid sweep")

// Scenario is a scripted sequence of calculations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one calculation. Inputs are in SI units and override the
// preset's.
type ScenarioStep struct {
	Topic  string             `yaml:"topic"`
	Target string             `yaml:"target"`
	Preset string             `yaml:"preset"`
	Inputs map[string]float64 `yaml:"inputs"`
	Points int                `yaml:"points"`
	Save   bool               `yaml:"save"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &scenario, nil
}

// Saver persists a calculation and returns its id.
type Saver interface {
	Save(res *experiment.Result) (string, error)
}

// StepResult pairs a step's calculation with the id it was saved under.
type StepResult struct {
	Result *experiment.Result
	SaveID string
}

// RunScenario evaluates every step in order. A nil saver ignores Save flags.
// It stops at the first failing step and returns what completed before it.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, saver Saver) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		slog.Debug("running step", "step", i+1, "of", len(scenario.Steps), "topic", step.Topic)

		cfg := experiment.Config{Topic: step.Topic, Target: step.Target, Points: step.Points, Params: map[string]float64{}}
		if step.Preset != "" {
			p := config.GetPreset(step.Topic, step.Preset)
			if p == nil {
				return results, fmt.Errorf("step %d: unknown preset %s", i+1, step.Preset)
			}
			if cfg.Target == "" {
				cfg.Target = p.Target
			}
			for k, v := range p.Inputs {
				cfg.Params[k] = v
			}
		}
		for k, v := range step.Inputs {
			cfg.Params[k] = v
		}

		topic, err := registry.GetTopic(step.Topic)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(topic); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Result: res}
		if step.Save && saver != nil {
			if sr.SaveID, err = saver.Save(res); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep evaluates one result of a topic across a range of one input.
type ParameterSweep struct {
	Topic    string
	Target   string
	// Base holds the other inputs, in SI units.
	Base     map[string]float64
	Param    string
	Min, Max float64
	Steps    int
	// Result names the output to record; empty means the first one.
	Result   string
}

type SweepPoint struct {
	Param float64
	Value float64
	Unit  string
	Err   error
}

// RunSweep evaluates the sweep, one goroutine per value. Points whose
// calculation fails keep the error and do not stop the sweep; a bad topic or
// parameter name does.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepPoint, error) {
	if sweep.Steps < 2 {
		return nil, fmt.Errorf("%w: %d steps", ErrInvalidSweep, sweep.Steps)
	}
	if sweep.Param == "" {
		return nil, fmt.Errorf("%w: no parameter", ErrInvalidSweep)
	}

	points := make([]SweepPoint, sweep.Steps)
	errs := make([]error, sweep.Steps)
	step := (sweep.Max - sweep.Min) / float64(sweep.Steps-1)

	var wg sync.WaitGroup
	for i := 0; i < sweep.Steps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			points[idx], errs[idx] = sweepPoint(ctx, sweep, registry, sweep.Min+float64(idx)*step)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

func sweepPoint(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, paramVal float64) (SweepPoint, error) {
	if err := ctx.Err(); err != nil {
		return SweepPoint{}, err
	}

	params := make(map[string]float64, len(sweep.Base)+1)
	for k, v := range sweep.Base {
		params[k] = v
	}
	params[sweep.Param] = paramVal

	topic, err := registry.GetTopic(sweep.Topic)
	if err != nil {
		return SweepPoint{}, err
	}
	exp := experiment.New(experiment.Config{Topic: sweep.Topic, Target: sweep.Target, Params: params})
	if err := exp.Setup(topic); err != nil {
		return SweepPoint{}, err
	}
	results, err := topic.Results()
	if err != nil {
		return SweepPoint{Param: paramVal, Err: err}, nil
	}

	for _, r := range results {
		if sweep.Result == "" || r.Name == sweep.Result {
			return SweepPoint{Param: paramVal, Value: r.Value, Unit: r.Unit}, nil
		}
	}
	return SweepPoint{Param: paramVal, Err: fmt.Errorf("no result %q", sweep.Result)}, nil
}

// Values returns the successful sweep values in order.
func Values(points []SweepPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Err == nil {
			out = append(out, p.Value)
		}
	}
	return out
}
