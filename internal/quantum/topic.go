package quantum

import "github.com/san-kum/qmlab/internal/units"

// Field describes one input of a topic.
type Field struct {
	Name  string
	Label string
	Kind  units.Kind
	// Unit is the display unit a form starts in.
	Unit string
	// Units overrides the kind's unit list when set.
	Units []string
}

// Result is one computed output, in SI units unless Unit says otherwise.
type Result struct {
	Name  string
	Label string
	Value float64
	Unit  string
}

// Series is one sampled curve for charting.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// Topic is a calculator over named SI parameters.
type Topic interface {
	Name() string
	Title() string
	Fields() []Field
	GetParams() map[string]float64
	SetParam(name string, value float64) error
	Results() ([]Result, error)
}

// Targeted is implemented by topics that can solve for different unknowns.
type Targeted interface {
	Targets() []string
	SetTarget(target string) error
}

// Sampler is implemented by topics that produce chartable curves.
type Sampler interface {
	Samples(points int) ([]Series, error)
}

func linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	xs := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	return xs
}
