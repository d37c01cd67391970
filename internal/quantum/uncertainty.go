package quantum

import "github.com/san-kum/qmlab/internal/units"

// Uncertainty evaluates the minimum-uncertainty forms Δx·Δp ≥ ħ and
// ΔE·Δt ≥ ħ.
type Uncertainty struct {
	DeltaX float64
	Mass   float64
	DeltaT float64
}

func NewUncertainty() *Uncertainty {
	return &Uncertainty{DeltaX: 1e-10, Mass: ElectronMass, DeltaT: 1e-8}
}

func (u *Uncertainty) Name() string  { return "uncertainty" }
func (u *Uncertainty) Title() string { return "uncertainty principle" }

func (u *Uncertainty) Fields() []Field {
	return []Field{
		{Name: "delta_x", Label: "position uncertainty Δx", Kind: units.Length, Unit: "nm"},
		{Name: "mass", Label: "mass m", Kind: units.Mass, Unit: "me"},
		{Name: "delta_t", Label: "lifetime Δt", Kind: units.Time, Unit: "ns"},
	}
}

func (u *Uncertainty) GetParams() map[string]float64 {
	return map[string]float64{"delta_x": u.DeltaX, "mass": u.Mass, "delta_t": u.DeltaT}
}

func (u *Uncertainty) SetParam(name string, value float64) error {
	switch name {
	case "delta_x":
		u.DeltaX = value
	case "mass":
		u.Mass = value
	case "delta_t":
		u.DeltaT = value
	default:
		return unknownParam(u.Name(), name)
	}
	return nil
}

// PositionMomentum returns Δp = ħ/Δx and Δv = Δp/m.
func PositionMomentum(deltaX, mass float64) (dp, dv float64, err error) {
	if deltaX <= 0 {
		return 0, 0, boundsErr("uncertainty", "delta_x", deltaX)
	}
	if mass <= 0 {
		return 0, 0, boundsErr("uncertainty", "mass", mass)
	}
	dp = HBar / deltaX
	return dp, dp / mass, nil
}

// EnergyTime returns ΔE = ħ/Δt and the matching frequency spread ΔE/h.
func EnergyTime(deltaT float64) (de, freq float64, err error) {
	if deltaT <= 0 {
		return 0, 0, boundsErr("uncertainty", "delta_t", deltaT)
	}
	de = HBar / deltaT
	return de, de / Planck, nil
}

func (u *Uncertainty) Results() ([]Result, error) {
	dp, dv, err := PositionMomentum(u.DeltaX, u.Mass)
	if err != nil {
		return nil, err
	}
	de, freq, err := EnergyTime(u.DeltaT)
	if err != nil {
		return nil, err
	}
	return []Result{
		{Name: "delta_p", Label: "momentum uncertainty Δp", Value: dp, Unit: "kg·m/s"},
		{Name: "delta_v", Label: "velocity uncertainty Δv", Value: dv, Unit: "m/s"},
		{Name: "delta_e", Label: "energy uncertainty ΔE", Value: de, Unit: "J"},
		{Name: "delta_e_ev", Label: "energy uncertainty ΔE", Value: de / ElementaryCharge, Unit: "eV"},
		{Name: "delta_f", Label: "frequency spread Δf", Value: freq, Unit: "Hz"},
	}, nil
}
