package units

// Factors for the named-particle and natural units in the default table.
const (
	ElectronMass     = 9.10938356e-31
	ProtonMass       = 1.6726219e-27
	AtomicMassUnit   = 1.66053906660e-27
	ElectronVolt     = 1.602176634e-19
	ElementaryCharge = 1.602176634e-19
	SpeedOfLight     = 299792458.0
)
