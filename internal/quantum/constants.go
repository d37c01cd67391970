package quantum

// Constants at the precision used in the worked textbook examples.
const (
	Planck           = 6.626e-34
	HBar             = 1.0545718e-34
	ElementaryCharge = 1.602e-19
	ElectronMass     = 9.109e-31
	SpeedOfLight     = 2.998e8

	// ElectronAngstromRule is the constant in λ[Å] ≈ 12.27/√V[V].
	ElectronAngstromRule = 12.27
)
