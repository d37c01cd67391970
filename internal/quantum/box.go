package quantum

import (
	"math"

	"github.com/san-kum/qmlab/internal/units"
)

// Box is a particle confined to a one-dimensional rigid box.
type Box struct {
	Length float64
	Mass   float64
	N      int
	// NFinal is the level of a transition from N; 0 means none.
	NFinal int
}

func NewBox() *Box {
	return &Box{Length: 1e-9, Mass: units.ElectronMass, N: 1}
}

func (b *Box) Name() string  { return "box" }
func (b *Box) Title() string { return "particle in a rigid box" }

func (b *Box) Fields() []Field {
	return []Field{
		{Name: "length", Label: "box length L", Kind: units.Length, Unit: "nm"},
		{Name: "mass", Label: "mass m", Kind: units.Mass, Unit: "me"},
		{Name: "n", Label: "quantum number n"},
		{Name: "n_final", Label: "final level (0 = none)"},
	}
}

func (b *Box) GetParams() map[string]float64 {
	return map[string]float64{
		"length":  b.Length,
		"mass":    b.Mass,
		"n":       float64(b.N),
		"n_final": float64(b.NFinal),
	}
}

func (b *Box) SetParam(name string, value float64) error {
	switch name {
	case "length":
		b.Length = value
	case "mass":
		b.Mass = value
	case "n":
		b.N = int(math.Round(value))
	case "n_final":
		b.NFinal = int(math.Round(value))
	default:
		return unknownParam(b.Name(), name)
	}
	return nil
}

func (b *Box) validate() error {
	if b.Length <= 0 {
		return boundsErr(b.Name(), "length", b.Length)
	}
	if b.Mass <= 0 {
		return boundsErr(b.Name(), "mass", b.Mass)
	}
	if b.N < 1 {
		return boundsErr(b.Name(), "n", float64(b.N))
	}
	if b.NFinal < 0 {
		return boundsErr(b.Name(), "n_final", float64(b.NFinal))
	}
	return nil
}

// Energy returns Eₙ = n²h²/(8mL²) in joules.
func (b *Box) Energy(n int) float64 {
	fn := float64(n)
	return fn * fn * Planck * Planck / (8 * b.Mass * b.Length * b.Length)
}

// Wavelength returns the standing-wave wavelength 2L/n.
func (b *Box) Wavelength(n int) float64 {
	return 2 * b.Length / float64(n)
}

// Transition returns the energy change from level ni to nf and the
// wavelength of the photon emitted or absorbed.
func (b *Box) Transition(ni, nf int) (deltaE, photon float64) {
	deltaE = b.Energy(nf) - b.Energy(ni)
	if deltaE != 0 {
		photon = Planck * SpeedOfLight / math.Abs(deltaE)
	}
	return deltaE, photon
}

func (b *Box) Results() ([]Result, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	e := b.Energy(b.N)
	out := []Result{
		{Name: "energy", Label: "energy Eₙ", Value: e, Unit: "J"},
		{Name: "energy_ev", Label: "energy Eₙ", Value: e / ElementaryCharge, Unit: "eV"},
		{Name: "wavelength", Label: "wavelength 2L/n", Value: b.Wavelength(b.N), Unit: "m"},
	}
	if b.NFinal > 0 {
		de, photon := b.Transition(b.N, b.NFinal)
		out = append(out,
			Result{Name: "energy_final", Label: "final energy", Value: b.Energy(b.NFinal), Unit: "J"},
			Result{Name: "delta_e", Label: "ΔE", Value: de, Unit: "J"},
			Result{Name: "delta_e_ev", Label: "ΔE", Value: de / ElementaryCharge, Unit: "eV"},
			Result{Name: "photon_wavelength", Label: "photon λ", Value: photon, Unit: "m"},
		)
	}
	return out, nil
}

// Psi returns √(2/L)·sin(nπx/L).
func (b *Box) Psi(n int, x float64) float64 {
	return math.Sqrt(2/b.Length) * math.Sin(float64(n)*math.Pi*x/b.Length)
}

// Samples returns ψₙ and |ψₙ|² across the box, plus ψ of the final level
// when one is set.
func (b *Box) Samples(points int) ([]Series, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	xs := linspace(0, b.Length, points)
	psi := make([]float64, len(xs))
	prob := make([]float64, len(xs))
	for i, x := range xs {
		psi[i] = b.Psi(b.N, x)
		prob[i] = psi[i] * psi[i]
	}
	out := []Series{
		{Name: "ψ", X: xs, Y: psi},
		{Name: "|ψ|²", X: xs, Y: prob},
	}
	if b.NFinal > 0 {
		psi2 := make([]float64, len(xs))
		for i, x := range xs {
			psi2[i] = b.Psi(b.NFinal, x)
		}
		out = append(out, Series{Name: "ψ final", X: xs, Y: psi2})
	}
	return out, nil
}
