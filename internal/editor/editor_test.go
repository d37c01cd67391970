package editor_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qmlab/internal/editor"
	"github.com/san-kum/qmlab/internal/units"
)

func ptr[T any](v T) *T { return &v }

// recorder collects OnChange reports.
type recorder struct {
	values []float64
}

func (r *recorder) onChange(v float64) { r.values = append(r.values, v) }

var _ = Describe("Editor", func() {
	var rec *recorder

	BeforeEach(func() {
		rec = &recorder{}
	})

	Describe("construction", func() {
		It("shows 1.23 nm as mantissa 1.23 and exponent 0", func() {
			ed := editor.New(editor.Config{
				ValueSI:  ptr(1.23e-9),
				Kind:     units.Length,
				Unit:     ptr("nm"),
				OnChange: rec.onChange,
			})
			Expect(ed.Factor()).To(Equal(1e-9))
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "1.23", Exponent: "0"}))
			Expect(rec.values).To(BeEmpty())
		})

		It("prefers ValueSI over Value", func() {
			ed := editor.New(editor.Config{Value: ptr(2.0), ValueSI: ptr(3.0)})
			v, ok := ed.ValueSI()
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(3.0))
			Expect(ed.Buffer().Mantissa).To(Equal("3"))
		})

		It("falls back to Value when ValueSI is absent", func() {
			ed := editor.New(editor.Config{Value: ptr(0.0)})
			Expect(ed.HasValue()).To(BeTrue())
			Expect(ed.Buffer()).To(Equal(editor.Zero))
		})

		It("leaves the buffer alone without a value", func() {
			ed := editor.New(editor.Config{Kind: units.Length, OnChange: rec.onChange})
			Expect(ed.HasValue()).To(BeFalse())
			Expect(ed.Display()).To(Equal(0.0))
			Expect(ed.Buffer()).To(Equal(editor.Zero))
			Expect(rec.values).To(BeEmpty())
		})

		It("starts an uncontrolled unit at DefaultUnit, then the first option", func() {
			Expect(editor.New(editor.Config{Kind: units.Mass, DefaultUnit: "me"}).Unit()).To(Equal("me"))
			Expect(editor.New(editor.Config{Kind: units.Mass}).Unit()).To(Equal("kg"))
			Expect(editor.New(editor.Config{}).Unit()).To(Equal(""))
		})

		It("uses explicit unit options over the kind table", func() {
			ed := editor.New(editor.Config{
				ValueSI:     ptr(1e-10),
				UnitOptions: []string{"m", "nm", "Angstrom"},
				DefaultUnit: "Angstrom",
			})
			Expect(ed.Options()).To(Equal([]string{"m", "nm", "Angstrom"}))
			Expect(ed.Resolution().Source).To(Equal(units.SourceFallback))
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "1", Exponent: "0"}))
		})

		It("reads from an injected table", func() {
			tbl := units.Table{units.Length: {{Symbol: "furlong", Factor: 201.168}}}
			ed := editor.New(editor.Config{ValueSI: ptr(201.168), Kind: units.Length, Table: tbl})
			Expect(ed.Unit()).To(Equal("furlong"))
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "1", Exponent: "0"}))
		})
	})

	Describe("unknown units", func() {
		It("treats an unrecognised unit as SI and flags it", func() {
			ed := editor.New(editor.Config{ValueSI: ptr(10.0), Unit: ptr("furlong")})
			Expect(ed.Factor()).To(Equal(1.0))
			Expect(ed.Resolution().Unresolved()).To(BeTrue())
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "1", Exponent: "1"}))
		})
	})

	Describe("typing", func() {
		var ed *editor.Editor

		BeforeEach(func() {
			ed = editor.New(editor.Config{ValueSI: ptr(5e-9), Unit: ptr("m"), OnChange: rec.onChange})
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "5", Exponent: "-9"}))
		})

		It("reports the recombined SI value when the exponent changes", func() {
			ed.SetExponent("-10")
			Expect(rec.values).To(Equal([]float64{5e-10}))
			Expect(ed.Buffer().Exponent).To(Equal("-10"))
		})

		It("does not report partial input", func() {
			Expect(func() {
				ed.SetMantissa("-")
				ed.SetMantissa("")
				ed.SetExponent("-")
			}).NotTo(Panic())
			Expect(rec.values).To(BeEmpty())
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "", Exponent: "-"}))
		})

		It("reports a trailing decimal point as the number before it", func() {
			ed.SetMantissa("1.")
			Expect(rec.values).To(HaveLen(1))
			Expect(rec.values[0]).To(BeNumerically("~", 1e-9, 1e-24))
			Expect(ed.Buffer().Mantissa).To(Equal("1."))
		})

		It("does not report an overflowing value", func() {
			ed.SetExponent("400")
			Expect(rec.values).To(BeEmpty())
		})

		It("keeps the user's exact text when the parent echoes the value back", func() {
			ed.SetMantissa("5.0")
			Expect(rec.values).To(HaveLen(1))
			Expect(ed.SetValueSI(ptr(rec.values[0]))).To(BeFalse())
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "5.0", Exponent: "-9"}))
		})

		It("keeps partial input while the parent value is unchanged", func() {
			ed.SetMantissa("-")
			Expect(ed.SetValueSI(ptr(5e-9))).To(BeFalse())
			Expect(ed.Buffer().Mantissa).To(Equal("-"))
		})

		It("rewrites partial input when the parent value changes", func() {
			ed.SetMantissa("-")
			Expect(ed.SetValueSI(ptr(7e-9))).To(BeTrue())
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "7", Exponent: "-9"}))
		})
	})

	Describe("external updates", func() {
		It("rewrites the buffer when the value moves out of tolerance", func() {
			ed := editor.New(editor.Config{ValueSI: ptr(1.0)})
			Expect(ed.SetValueSI(ptr(2.5e3))).To(BeTrue())
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "2.5", Exponent: "3"}))
		})

		It("leaves a non-canonical buffer that already matches", func() {
			ed := editor.New(editor.Config{ValueSI: ptr(1.0), OnChange: rec.onChange})
			ed.SetMantissa("1.0")
			ed.SetExponent("00")
			Expect(ed.SetValueSI(ptr(1.0 + 1e-12))).To(BeFalse())
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "1.0", Exponent: "00"}))
		})

		It("keeps the buffer when the value is cleared", func() {
			ed := editor.New(editor.Config{ValueSI: ptr(3.0)})
			Expect(ed.SetValueSI(nil)).To(BeFalse())
			Expect(ed.HasValue()).To(BeFalse())
			Expect(ed.Buffer().Mantissa).To(Equal("3"))
		})
	})

	Describe("unit switching", func() {
		It("re-expresses the same SI value in an uncontrolled unit", func() {
			var notified []string
			ed := editor.New(editor.Config{
				ValueSI:      ptr(5e-9),
				Kind:         units.Length,
				OnUnitChange: func(u string) { notified = append(notified, u) },
			})
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "5", Exponent: "-9"}))

			Expect(ed.SelectUnit("nm")).To(BeTrue())
			Expect(ed.Unit()).To(Equal("nm"))
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "5", Exponent: "0"}))
			Expect(notified).To(Equal([]string{"nm"}))

			si, ok := editor.Encoded(ed.Buffer(), ed.Factor())
			Expect(ok).To(BeTrue())
			Expect(si).To(BeNumerically("~", 5e-9, 5e-9*editor.RelTol))
		})

		It("only notifies the parent in controlled mode", func() {
			unit := "m"
			ed := editor.New(editor.Config{
				ValueSI:      ptr(2e-10),
				Kind:         units.Length,
				Unit:         &unit,
				OnUnitChange: func(u string) { unit = u },
			})
			Expect(ed.Controlled()).To(BeTrue())

			Expect(ed.SelectUnit("Å")).To(BeFalse())
			Expect(unit).To(Equal("Å"))
			Expect(ed.Unit()).To(Equal("m"))

			Expect(ed.SetControlledUnit(unit)).To(BeTrue())
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "2", Exponent: "0"}))
		})

		It("cycles through the options in order", func() {
			ed := editor.New(editor.Config{ValueSI: ptr(1.0), Kind: units.Voltage})
			ed.CycleUnit(1)
			Expect(ed.Unit()).To(Equal("kV"))
			ed.CycleUnit(-2)
			Expect(ed.Unit()).To(Equal(units.Normalize("μV")))
			Expect(ed.Buffer()).To(Equal(editor.Buffer{Mantissa: "1", Exponent: "6"}))
		})

		It("keeps every unit consistent with the SI value", func() {
			value := 1.5e-19
			ed := editor.New(editor.Config{ValueSI: &value, Kind: units.Energy})
			for _, u := range ed.Options() {
				ed.SelectUnit(u)
				si, ok := editor.Encoded(ed.Buffer(), ed.Factor())
				Expect(ok).To(BeTrue())
				Expect(math.Abs(si-value)).To(BeNumerically("<=", math.Abs(value)*editor.RelTol), "unit %s", u)
			}
		})
	})

	It("does not change sync behaviour when disabled", func() {
		ed := editor.New(editor.Config{ValueSI: ptr(4.0), Disabled: true, OnChange: rec.onChange})
		Expect(ed.Disabled()).To(BeTrue())
		ed.SetMantissa("8")
		Expect(rec.values).To(Equal([]float64{8}))
	})
})
