package quantum

import (
	"math"

	"github.com/san-kum/qmlab/internal/units"
)

// ElectronWavelength gives the wavelength of an electron accelerated from
// rest through Voltage.
type ElectronWavelength struct {
	Voltage float64
}

func NewElectronWavelength() *ElectronWavelength {
	return &ElectronWavelength{Voltage: 100}
}

func (e *ElectronWavelength) Name() string  { return "electron" }
func (e *ElectronWavelength) Title() string { return "electron wavelength" }

func (e *ElectronWavelength) Fields() []Field {
	return []Field{{Name: "voltage", Label: "accelerating voltage V", Kind: units.Voltage, Unit: "V"}}
}

func (e *ElectronWavelength) GetParams() map[string]float64 {
	return map[string]float64{"voltage": e.Voltage}
}

func (e *ElectronWavelength) SetParam(name string, value float64) error {
	if name != "voltage" {
		return unknownParam(e.Name(), name)
	}
	e.Voltage = value
	return nil
}

// Approx returns 12.27/√V in ångströms, or 0 for V <= 0.
func (e *ElectronWavelength) Approx() float64 {
	if e.Voltage <= 0 {
		return 0
	}
	return ElectronAngstromRule / math.Sqrt(e.Voltage)
}

// Precise returns h/√(2meV) in metres, or 0 for V <= 0.
func (e *ElectronWavelength) Precise() float64 {
	if e.Voltage <= 0 {
		return 0
	}
	return Planck / math.Sqrt(2*ElectronMass*ElementaryCharge*e.Voltage)
}

func (e *ElectronWavelength) Results() ([]Result, error) {
	return []Result{
		{Name: "approx", Label: "λ ≈ 12.27/√V", Value: e.Approx(), Unit: "Å"},
		{Name: "precise", Label: "λ = h/√(2meV)", Value: e.Precise(), Unit: "m"},
	}, nil
}

// Samples returns λ[Å] against V over 10 V to 1000 V.
func (e *ElectronWavelength) Samples(points int) ([]Series, error) {
	return ElectronWavelengthCurve(10, 1000, points)
}

// ElectronWavelengthCurve samples 12.27/√V between vmin and vmax.
func ElectronWavelengthCurve(vmin, vmax float64, points int) ([]Series, error) {
	if vmin <= 0 {
		return nil, boundsErr("electron", "vmin", vmin)
	}
	if vmax <= vmin {
		return nil, boundsErr("electron", "vmax", vmax)
	}
	xs := linspace(vmin, vmax, points)
	ys := make([]float64, len(xs))
	for i, v := range xs {
		ys[i] = ElectronAngstromRule / math.Sqrt(v)
	}
	return []Series{{Name: "λ (Å)", X: xs, Y: ys}}, nil
}
