package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/qmlab/internal/quantum"
)

// DefaultPoints is the sample count for charts when Config.Points is unset.
const DefaultPoints = 100

type Config struct {
	Topic  string
	Target string
	Params map[string]float64
	Points int
}

// Result is one evaluated calculation.
type Result struct {
	Topic   string
	Target  string
	Params  map[string]float64
	Results []quantum.Result
	Series  []quantum.Series
}

type Experiment struct {
	cfg   Config
	topic quantum.Topic
}

func New(cfg Config) *Experiment {
	if cfg.Points <= 0 {
		cfg.Points = DefaultPoints
	}
	return &Experiment{cfg: cfg}
}

// Setup applies the configured target and parameters to topic.
func (e *Experiment) Setup(topic quantum.Topic) error {
	if e.cfg.Target != "" {
		t, ok := topic.(quantum.Targeted)
		if !ok {
			return fmt.Errorf("topic %s has no solve targets", topic.Name())
		}
		if err := t.SetTarget(e.cfg.Target); err != nil {
			return err
		}
	}
	for name, v := range e.cfg.Params {
		if err := topic.SetParam(name, v); err != nil {
			return err
		}
	}
	e.topic = topic
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.topic == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results, err := e.topic.Results()
	if err != nil {
		return nil, err
	}

	out := &Result{
		Topic:   e.topic.Name(),
		Target:  e.cfg.Target,
		Params:  e.topic.GetParams(),
		Results: results,
	}
	if s, ok := e.topic.(quantum.Sampler); ok {
		series, err := s.Samples(e.cfg.Points)
		if err != nil {
			return nil, err
		}
		out.Series = series
	}
	return out, nil
}

// Topic returns the configured topic.
func (e *Experiment) Topic() quantum.Topic {
	return e.topic
}
