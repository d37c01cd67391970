package quantum

import (
	"math"

	"github.com/san-kum/qmlab/internal/units"
)

// Illustrative geometry for the tunneling chart, in arbitrary units.
const (
	barrierStart = 3.0
	barrierEnd   = 5.0
	chartEnd     = 10.0
	chartPerUnit = 20
	incidentK    = 2.0
)

// Barrier is a particle of given Energy meeting a rectangular potential
// barrier of Height and Width.
type Barrier struct {
	Energy float64
	Height float64
	Width  float64
	Mass   float64
}

func NewBarrier() *Barrier {
	return &Barrier{
		Energy: 3 * ElementaryCharge,
		Height: 4 * ElementaryCharge,
		Width:  2e-9,
		Mass:   ElectronMass,
	}
}

func (b *Barrier) Name() string  { return "tunnel" }
func (b *Barrier) Title() string { return "barrier tunneling" }

func (b *Barrier) Fields() []Field {
	return []Field{
		{Name: "energy", Label: "particle energy E", Kind: units.Energy, Unit: "eV"},
		{Name: "height", Label: "barrier height V", Kind: units.Energy, Unit: "eV"},
		{Name: "width", Label: "barrier width W", Kind: units.Length, Unit: "nm"},
		{Name: "mass", Label: "mass m", Kind: units.Mass, Unit: "me"},
	}
}

func (b *Barrier) GetParams() map[string]float64 {
	return map[string]float64{
		"energy": b.Energy,
		"height": b.Height,
		"width":  b.Width,
		"mass":   b.Mass,
	}
}

func (b *Barrier) SetParam(name string, value float64) error {
	switch name {
	case "energy":
		b.Energy = value
	case "height":
		b.Height = value
	case "width":
		b.Width = value
	case "mass":
		b.Mass = value
	default:
		return unknownParam(b.Name(), name)
	}
	return nil
}

// Kappa returns the decay constant √(2m(V−E))/ħ inside the barrier, or 0
// when the particle passes over it.
func (b *Barrier) Kappa() float64 {
	if b.Energy >= b.Height {
		return 0
	}
	return math.Sqrt(2*b.Mass*(b.Height-b.Energy)) / HBar
}

// Transmission returns the wide-barrier approximation
// 16(E/V)(1−E/V)·exp(−2κW). A particle at or above the barrier passes with
// probability 1.
func (b *Barrier) Transmission() float64 {
	if b.Energy >= b.Height {
		return 1
	}
	ratio := b.Energy / b.Height
	return 16 * ratio * (1 - ratio) * math.Exp(-2*b.Width*b.Kappa())
}

func (b *Barrier) validate() error {
	if b.Height <= 0 {
		return boundsErr(b.Name(), "height", b.Height)
	}
	if b.Energy < 0 {
		return boundsErr(b.Name(), "energy", b.Energy)
	}
	if b.Width < 0 {
		return boundsErr(b.Name(), "width", b.Width)
	}
	if b.Mass <= 0 {
		return boundsErr(b.Name(), "mass", b.Mass)
	}
	return nil
}

func (b *Barrier) Results() ([]Result, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	t := b.Transmission()
	return []Result{
		{Name: "transmission", Label: "transmission T", Value: t},
		{Name: "percent", Label: "transmission", Value: 100 * t, Unit: "%"},
		{Name: "kappa", Label: "decay constant κ", Value: b.Kappa(), Unit: "1/m"},
	}, nil
}

// Samples returns an illustrative wave function: a sine before the barrier,
// exponential decay inside it at a rate derived from T, and a weaker sine
// after it. The points argument is ignored; the chart uses a fixed grid.
func (b *Barrier) Samples(int) ([]Series, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	t := b.Transmission()
	alpha := 2.0
	if t > 0 {
		alpha = math.Min(2, math.Max(0.2, -math.Log(t)/(barrierEnd-barrierStart)))
	}

	n := int(chartEnd*chartPerUnit) + 1
	xs := make([]float64, n)
	psi := make([]float64, n)
	barrier := make([]float64, n)
	edge := math.Sin(incidentK * barrierStart * 2)
	decay := math.Exp(-alpha * (barrierEnd - barrierStart))

	for i := range xs {
		x := float64(i) / chartPerUnit
		xs[i] = x
		switch {
		case x < barrierStart:
			psi[i] = math.Sin(incidentK * x * 2)
		case x <= barrierEnd:
			psi[i] = edge * math.Exp(-alpha*(x-barrierStart))
			barrier[i] = 1
		default:
			psi[i] = edge * decay * math.Sin(incidentK*(x-barrierEnd+1.6))
		}
	}
	return []Series{
		{Name: "ψ", X: xs, Y: psi},
		{Name: "barrier", X: xs, Y: barrier},
	}, nil
}
