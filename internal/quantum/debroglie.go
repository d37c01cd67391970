package quantum

import (
	"fmt"
	"math"

	"github.com/san-kum/qmlab/internal/units"
)

// Solve targets for DeBroglie.
const (
	TargetWavelength = "wavelength"
	TargetMass       = "mass"
	TargetVelocity   = "velocity"
	TargetVoltage    = "voltage"
)

// Targets lists the quantities DeBroglie can solve for.
var Targets = []string{TargetWavelength, TargetMass, TargetVelocity, TargetVoltage}

// DeBroglie rearranges λ = h/(mv) = h/√(2meV) to solve for one unknown.
type DeBroglie struct {
	Target     string
	Wavelength float64
	Mass       float64
	Velocity   float64
	Voltage    float64
}

func NewDeBroglie() *DeBroglie {
	return &DeBroglie{
		Target:     TargetWavelength,
		Wavelength: 1.23e-9,
		Mass:       ElectronMass,
		Velocity:   6e5,
		Voltage:    100,
	}
}

func (d *DeBroglie) Name() string  { return "debroglie" }
func (d *DeBroglie) Title() string { return "de Broglie solver" }

func (d *DeBroglie) Targets() []string {
	return append([]string(nil), Targets...)
}

// SetTarget chooses the unknown.
func (d *DeBroglie) SetTarget(target string) error {
	for _, t := range Targets {
		if t == target {
			d.Target = target
			return nil
		}
	}
	return &CalcError{Topic: d.Name(), Field: "target", Wrapped: fmt.Errorf("%w: %q", ErrUnknownTarget, target)}
}

func (d *DeBroglie) Fields() []Field {
	wavelength := Field{Name: "wavelength", Label: "wavelength λ", Kind: units.Length, Unit: "nm"}
	mass := Field{Name: "mass", Label: "mass m", Kind: units.Mass, Unit: "me"}
	velocity := Field{Name: "velocity", Label: "velocity v", Kind: units.Velocity, Unit: "m/s"}

	switch d.Target {
	case TargetMass:
		return []Field{wavelength, velocity}
	case TargetVelocity:
		return []Field{wavelength, mass}
	case TargetVoltage:
		return []Field{wavelength, mass}
	default:
		return []Field{mass, velocity}
	}
}

func (d *DeBroglie) GetParams() map[string]float64 {
	return map[string]float64{
		"wavelength": d.Wavelength,
		"mass":       d.Mass,
		"velocity":   d.Velocity,
		"voltage":    d.Voltage,
	}
}

func (d *DeBroglie) SetParam(name string, value float64) error {
	switch name {
	case "wavelength":
		d.Wavelength = value
	case "mass":
		d.Mass = value
	case "velocity":
		d.Velocity = value
	case "voltage":
		d.Voltage = value
	default:
		return unknownParam(d.Name(), name)
	}
	return nil
}

// Solve returns the target quantity in SI units. A zero denominator yields 0
// rather than an error, matching how the form shows an incomplete input.
func (d *DeBroglie) Solve() (float64, error) {
	switch d.Target {
	case TargetWavelength:
		return safeDiv(Planck, d.Mass*d.Velocity), nil
	case TargetMass:
		return safeDiv(Planck, d.Wavelength*d.Velocity), nil
	case TargetVelocity:
		return safeDiv(Planck, d.Wavelength*d.Mass), nil
	case TargetVoltage:
		return safeDiv(Planck*Planck, 2*d.Mass*ElementaryCharge*d.Wavelength*d.Wavelength), nil
	}
	return 0, &CalcError{Topic: d.Name(), Field: "target", Wrapped: fmt.Errorf("%w: %q", ErrUnknownTarget, d.Target)}
}

func (d *DeBroglie) Results() ([]Result, error) {
	v, err := d.Solve()
	if err != nil {
		return nil, err
	}
	r := Result{Name: d.Target, Value: v}
	switch d.Target {
	case TargetWavelength:
		r.Label, r.Unit = "wavelength λ", "m"
	case TargetMass:
		r.Label, r.Unit = "mass m", "kg"
	case TargetVelocity:
		r.Label, r.Unit = "velocity v", "m/s"
	case TargetVoltage:
		r.Label, r.Unit = "accelerating voltage V", "V"
	}
	return []Result{r}, nil
}

func safeDiv(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) {
		return 0
	}
	return num / den
}
