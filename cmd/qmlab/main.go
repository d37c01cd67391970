package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/qmlab/internal/analysis"
	"github.com/san-kum/qmlab/internal/automation"
	"github.com/san-kum/qmlab/internal/config"
	"github.com/san-kum/qmlab/internal/editor"
	"github.com/san-kum/qmlab/internal/experiment"
	"github.com/san-kum/qmlab/internal/export"
	"github.com/san-kum/qmlab/internal/format"
	"github.com/san-kum/qmlab/internal/storage"
	"github.com/san-kum/qmlab/internal/tui"
	"github.com/san-kum/qmlab/internal/units"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	verbose    bool

	precision int
	saveRun   bool

	kindName string
	unitName string
	outFile  string

	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	sweepResult string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qmlab",
		Short: "quantum mechanics teaching lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return tui.RunInteractive(cfg, storage.New(dataDir))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".qmlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	calcCmd := &cobra.Command{
		Use:   "calc [topic]",
		Short: "evaluate a calculator",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalc,
	}
	addInputFlags(calcCmd, config.DefaultPoints)
	calcCmd.Flags().BoolVar(&saveRun, "save", false, "save the calculation")

	plotCmd := &cobra.Command{
		Use:   "plot [topic]",
		Short: "plot a topic's curves",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	addInputFlags(plotCmd, config.DefaultPoints)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [packet|wave]",
		Short: "spectrum of a sampled wave",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	addInputFlags(analyzeCmd, 1024)

	convertCmd := &cobra.Command{
		Use:   "convert [value] [from] [to]",
		Short: "convert a value between units",
		Args:  cobra.ExactArgs(3),
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVar(&kindName, "kind", "", "quantity kind")

	unitsCmd := &cobra.Command{
		Use:   "units [kind]",
		Short: "list unit tables",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listUnits,
	}

	splitCmd := &cobra.Command{
		Use:   "split [value]",
		Short: "show the mantissa and exponent an editor would display",
		Args:  cobra.ExactArgs(1),
		RunE:  runSplit,
	}
	splitCmd.Flags().StringVar(&unitName, "unit", "", "display unit")
	splitCmd.Flags().StringVar(&kindName, "kind", "", "quantity kind")
	splitCmd.Flags().IntVar(&precision, "precision", config.DefaultPrecision, "mantissa decimals")

	presetsCmd := &cobra.Command{
		Use:   "presets [topic]",
		Short: "list textbook examples for a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for topic: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "list calculators",
		RunE:  listTopics,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved calculations",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export saved samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export saved samples as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted sequence of calculations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [topic]",
		Short: "evaluate a result across a range of one input",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addInputFlags(sweepCmd, config.DefaultPoints)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "input to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "start value (SI)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "end value (SI)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "number of values")
	sweepCmd.Flags().StringVar(&sweepResult, "result", "", "result to record (default first)")

	rootCmd.AddCommand(calcCmd, plotCmd, analyzeCmd, convertCmd, unitsCmd, splitCmd, presetsCmd, topicsCmd, listCmd, exportCSVCmd, exportSVGCmd, batchCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.Debug("loaded config", "path", configFile, "topic", cfg.Topic)
	return cfg, nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	res, inputs, err := evaluate(cmd, args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\n\n", res.Topic)
	fmt.Fprintln(w, "INPUT\tVALUE\tSI")
	for _, in := range inputs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", in.label, format.Quantity(in.si/in.res.Factor, in.res.Unit), format.Human(in.si))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "RESULT\tVALUE")
	for _, r := range res.Results {
		label := r.Label
		if label == "" {
			label = r.Name
		}
		fmt.Fprintf(w, "%s\t%s\n", label, format.Quantity(r.Value, r.Unit))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved: %s\n", runID)
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	res, _, err := evaluate(cmd, args[0])
	if err != nil {
		return err
	}
	if len(res.Series) == 0 {
		return fmt.Errorf("topic %s has nothing to plot", res.Topic)
	}

	for _, series := range res.Series {
		if len(series.Y) == 0 {
			continue
		}
		graph := asciigraph.Plot(series.Y,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.Name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if args[0] != "packet" && args[0] != "wave" {
		return fmt.Errorf("analyze supports packet and wave, not %s", args[0])
	}
	res, _, err := evaluate(cmd, args[0])
	if err != nil {
		return err
	}
	if len(res.Series) == 0 || len(res.Series[0].X) < 2 {
		return fmt.Errorf("no samples to analyze")
	}

	series := res.Series[0]
	dx := series.X[1] - series.X[0]
	n := len(analysis.Pad(series.Y))
	ps := analysis.PowerSpectrum(series.Y)

	fmt.Printf("spectrum of %s (%d samples, padded to %d)\n\n", series.Name, len(series.Y), n)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BIN\tK\tPOWER")
	for _, bin := range analysis.Peaks(ps, 2) {
		fmt.Fprintf(w, "%d\t%s\t%s\n", bin, format.Human(analysis.WaveNumber(bin, n, dx)), format.Human(ps[bin]))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	plotData := ps
	if len(plotData) > 128 {
		plotData = plotData[:128]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+series.Name+")"),
	)
	fmt.Println()
	fmt.Println(graph)
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[0], err)
	}
	kind, err := units.ParseKind(kindName)
	if err != nil {
		return err
	}
	table, err := unitTable()
	if err != nil {
		return err
	}

	from, to := table.Resolve(kind, args[1]), table.Resolve(kind, args[2])
	logResolution("from", from)
	logResolution("to", to)

	out, err := table.Convert(v, args[1], args[2], kind)
	if err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", format.Quantity(v, args[1]), format.Quantity(out, args[2]))
	return nil
}

func listUnits(cmd *cobra.Command, args []string) error {
	table, err := unitTable()
	if err != nil {
		return err
	}

	kinds := table.Kinds()
	if len(args) == 1 {
		kind, err := units.ParseKind(args[0])
		if err != nil {
			return err
		}
		if !table.Has(kind) {
			return fmt.Errorf("%w: %s", units.ErrUnknownKind, args[0])
		}
		kinds = []units.Kind{kind}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tUNIT\tFACTOR")
	for _, kind := range kinds {
		for _, sym := range table.Symbols(kind) {
			factor, _ := table.Factor(kind, sym)
			fmt.Fprintf(w, "%s\t%s\t%s\n", kind, sym, strconv.FormatFloat(factor, 'g', -1, 64))
		}
	}
	return w.Flush()
}

func runSplit(cmd *cobra.Command, args []string) error {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[0], err)
	}
	kind, err := units.ParseKind(kindName)
	if err != nil {
		return err
	}
	table, err := unitTable()
	if err != nil {
		return err
	}

	ed := editor.New(editor.Config{
		ValueSI:     &v,
		Kind:        kind,
		DefaultUnit: unitName,
		Precision:   precision,
		Table:       table,
	})
	res := ed.Resolution()
	logResolution("unit", res)

	buf := ed.Buffer()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "mantissa\t%s\n", buf.Mantissa)
	fmt.Fprintf(w, "exponent\t%s\n", buf.Exponent)
	fmt.Fprintf(w, "unit\t%s\n", ed.Unit())
	fmt.Fprintf(w, "factor\t%s (%s)\n", strconv.FormatFloat(res.Factor, 'g', -1, 64), res.Source)
	fmt.Fprintf(w, "display\t%s\n", format.Quantity(ed.Display(), ed.Unit()))
	return w.Flush()
}

func listTopics(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tTITLE\tPRESETS")
	for _, name := range registry.ListTopics() {
		topic, err := registry.GetTopic(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, topic.Title(), len(config.ListPresets(name)))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no saved calculations")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTOPIC\tTIME\tRESULT")
	for _, run := range runs {
		result := "-"
		if len(run.Results) > 0 {
			r := run.Results[0]
			result = r.Name + " = " + format.Quantity(r.Value, r.Unit)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			run.ID,
			run.Topic,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			result,
		)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	if _, err := st.Load(runID); err != nil {
		return err
	}
	series, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no samples to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"x"}
	for _, s := range series {
		header = append(header, s.Name)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range series[0].X {
		row := []string{strconv.FormatFloat(series[0].X[i], 'g', 10, 64)}
		for _, s := range series {
			val := ""
			if i < len(s.Y) {
				val = strconv.FormatFloat(s.Y[i], 'g', 10, 64)
			}
			row = append(row, val)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	svg := export.SeriesToSVG(series, 800, 400)
	if svg == "" {
		return fmt.Errorf("no samples to export")
	}
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if scenario.Name != "" {
		fmt.Printf("%s\n", scenario.Name)
	}
	results, err := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry(), st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTOPIC\tRESULT\tSAVED")
	for i, sr := range results {
		result := "-"
		if len(sr.Result.Results) > 0 {
			r := sr.Result.Results[0]
			result = r.Name + " = " + format.Quantity(r.Value, r.Unit)
		}
		saved := sr.SaveID
		if saved == "" {
			saved = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, sr.Result.Topic, result, saved)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, _, err := evaluate(cmd, args[0])
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Topic:  args[0],
		Target: base.Target,
		Base:   base.Params,
		Param:  sweepParam,
		Min:    sweepMin,
		Max:    sweepMax,
		Steps:  sweepSteps,
		Result: sweepResult,
	}
	points, err := automation.RunSweep(cmd.Context(), sweep, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tVALUE\n", sweepParam)
	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(w, "%s\t%v\n", format.Human(p.Param), p.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", format.Human(p.Param), format.Quantity(p.Value, p.Unit))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if values := automation.Values(points); len(values) > 1 {
		caption := sweepResult
		if caption == "" {
			caption = "result"
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption+" vs "+sweepParam),
		))
	}
	return nil
}

func unitTable() (units.Table, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return cfg.Table()
}

func logResolution(what string, res units.Resolution) {
	switch {
	case res.Unresolved():
		slog.Warn("unknown unit, using factor 1", "for", what, "unit", res.Unit, "kind", res.Kind)
	case res.Source != units.SourceKind:
		slog.Debug("unit resolved", "for", what, "unit", res.Unit, "source", res.Source, "factor", res.Factor)
	}
}
