package quantum

import "math"

// Packet superposes two sine waves of nearby wave numbers into a beat.
type Packet struct {
	K1   float64
	K2   float64
	XMax float64
}

func NewPacket() *Packet {
	return &Packet{K1: 10, K2: 12, XMax: 10}
}

func (p *Packet) Name() string  { return "packet" }
func (p *Packet) Title() string { return "matter-wave packet" }

func (p *Packet) Fields() []Field {
	return []Field{
		{Name: "k1", Label: "wave number k₁"},
		{Name: "k2", Label: "wave number k₂"},
		{Name: "x_max", Label: "extent"},
	}
}

func (p *Packet) GetParams() map[string]float64 {
	return map[string]float64{"k1": p.K1, "k2": p.K2, "x_max": p.XMax}
}

func (p *Packet) SetParam(name string, value float64) error {
	switch name {
	case "k1":
		p.K1 = value
	case "k2":
		p.K2 = value
	case "x_max":
		p.XMax = value
	default:
		return unknownParam(p.Name(), name)
	}
	return nil
}

// BeatLength returns the distance between envelope nodes, 2π/|k₁−k₂|, or
// +Inf for equal wave numbers.
func (p *Packet) BeatLength() float64 {
	dk := math.Abs(p.K1 - p.K2)
	if dk == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / dk
}

func (p *Packet) Results() ([]Result, error) {
	return []Result{
		{Name: "k_mean", Label: "carrier wave number", Value: (p.K1 + p.K2) / 2},
		{Name: "delta_k", Label: "spread Δk", Value: math.Abs(p.K1 - p.K2)},
		{Name: "beat_length", Label: "envelope node spacing", Value: p.BeatLength()},
	}, nil
}

// Samples returns the superposition sin(k₁x)+sin(k₂x) and its envelope
// |2cos((k₁−k₂)x/2)|.
func (p *Packet) Samples(points int) ([]Series, error) {
	if p.XMax <= 0 {
		return nil, boundsErr(p.Name(), "x_max", p.XMax)
	}
	xs := linspace(0, p.XMax, points)
	sum := make([]float64, len(xs))
	env := make([]float64, len(xs))
	for i, x := range xs {
		sum[i] = math.Sin(p.K1*x) + math.Sin(p.K2*x)
		env[i] = math.Abs(2 * math.Cos((p.K1-p.K2)*x/2))
	}
	return []Series{
		{Name: "ψ", X: xs, Y: sum},
		{Name: "envelope", X: xs, Y: env},
	}, nil
}

// TravelingWave is the plane wave ψ = e^{i(kx−ωt)}.
type TravelingWave struct {
	K     float64
	Omega float64
	T     float64
	XMax  float64
}

func NewTravelingWave() *TravelingWave {
	return &TravelingWave{K: 2, Omega: 1, XMax: 10}
}

func (w *TravelingWave) Name() string  { return "wave" }
func (w *TravelingWave) Title() string { return "wave function" }

func (w *TravelingWave) Fields() []Field {
	return []Field{
		{Name: "k", Label: "wave number k"},
		{Name: "omega", Label: "angular frequency ω"},
		{Name: "t", Label: "time t"},
	}
}

func (w *TravelingWave) GetParams() map[string]float64 {
	return map[string]float64{"k": w.K, "omega": w.Omega, "t": w.T, "x_max": w.XMax}
}

func (w *TravelingWave) SetParam(name string, value float64) error {
	switch name {
	case "k":
		w.K = value
	case "omega":
		w.Omega = value
	case "t":
		w.T = value
	case "x_max":
		w.XMax = value
	default:
		return unknownParam(w.Name(), name)
	}
	return nil
}

func (w *TravelingWave) Results() ([]Result, error) {
	if w.K == 0 {
		return nil, boundsErr(w.Name(), "k", w.K)
	}
	if w.Omega == 0 {
		return nil, boundsErr(w.Name(), "omega", w.Omega)
	}
	return []Result{
		{Name: "wavelength", Label: "wavelength 2π/k", Value: 2 * math.Pi / math.Abs(w.K)},
		{Name: "period", Label: "period 2π/ω", Value: 2 * math.Pi / math.Abs(w.Omega)},
		{Name: "phase_velocity", Label: "phase velocity ω/k", Value: w.Omega / w.K},
	}, nil
}

// Samples returns Re ψ = cos(kx − ωt) and |ψ|², which is 1 everywhere: a
// plane wave carries no position information.
func (w *TravelingWave) Samples(points int) ([]Series, error) {
	if w.XMax <= 0 {
		return nil, boundsErr(w.Name(), "x_max", w.XMax)
	}
	xs := linspace(0, w.XMax, points)
	re := make([]float64, len(xs))
	prob := make([]float64, len(xs))
	for i, x := range xs {
		re[i] = math.Cos(w.K*x - w.Omega*w.T)
		prob[i] = 1
	}
	return []Series{
		{Name: "Re ψ", X: xs, Y: re},
		{Name: "|ψ|²", X: xs, Y: prob},
	}, nil
}
