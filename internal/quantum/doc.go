// Package quantum provides the closed-form calculators behind each topic.
//
// Every topic implements [Topic]: a named set of input [Field]s, read and
// written through GetParams/SetParam in SI units, and a list of [Result]s
// evaluated directly from textbook formulas:
//
//   - [DeBroglie]: λ = h/(mv), solved for any of λ, m, v or V
//   - [ElectronWavelength]: λ = h/√(2meV) and the 12.27/√V Å rule
//   - [Box]: particle in a rigid box, Eₙ = n²h²/(8mL²)
//   - [Barrier]: rectangular-barrier tunneling, T ≈ 16(E/V)(1−E/V)e^(−2κW)
//   - [Uncertainty]: Δp = ħ/Δx and ΔE = ħ/Δt
//   - [Qubit]: measurement probabilities and Bloch angle of α|0⟩ + β|1⟩
//   - [Packet], [TravelingWave]: sampled matter waves
//
// Topics that can be charted also implement [Sampler].
package quantum
