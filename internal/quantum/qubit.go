package quantum

import "math"

// Qubit is the real-amplitude state α|0⟩ + β|1⟩ with β = √(1−α²).
type Qubit struct {
	Alpha float64
}

func NewQubit() *Qubit {
	return &Qubit{Alpha: 0.707}
}

func (q *Qubit) Name() string  { return "qubit" }
func (q *Qubit) Title() string { return "qubit superposition" }

func (q *Qubit) Fields() []Field {
	return []Field{{Name: "alpha", Label: "amplitude α"}}
}

func (q *Qubit) GetParams() map[string]float64 {
	return map[string]float64{"alpha": q.Alpha}
}

func (q *Qubit) SetParam(name string, value float64) error {
	if name != "alpha" {
		return unknownParam(q.Name(), name)
	}
	q.Alpha = value
	return nil
}

// Beta returns √max(0, 1−α²).
func (q *Qubit) Beta() float64 {
	return math.Sqrt(math.Max(0, 1-q.Alpha*q.Alpha))
}

// Theta returns the Bloch polar angle 2·acos(α); |0⟩ sits at θ = 0.
func (q *Qubit) Theta() float64 {
	return 2 * math.Acos(q.Alpha)
}

func (q *Qubit) Results() ([]Result, error) {
	if math.Abs(q.Alpha) > 1 || math.IsNaN(q.Alpha) {
		return nil, boundsErr(q.Name(), "alpha", q.Alpha)
	}
	beta := q.Beta()
	return []Result{
		{Name: "beta", Label: "amplitude β", Value: beta},
		{Name: "p0", Label: "P(|0⟩)", Value: q.Alpha * q.Alpha},
		{Name: "p1", Label: "P(|1⟩)", Value: beta * beta},
		{Name: "theta", Label: "Bloch angle θ", Value: q.Theta(), Unit: "rad"},
	}, nil
}

// Samples returns the two measurement probabilities as a two-point series.
func (q *Qubit) Samples(int) ([]Series, error) {
	if math.Abs(q.Alpha) > 1 || math.IsNaN(q.Alpha) {
		return nil, boundsErr(q.Name(), "alpha", q.Alpha)
	}
	beta := q.Beta()
	return []Series{{Name: "P", X: []float64{0, 1}, Y: []float64{q.Alpha * q.Alpha, beta * beta}}}, nil
}
