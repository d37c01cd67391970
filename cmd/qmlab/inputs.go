package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/qmlab/internal/config"
	"github.com/san-kum/qmlab/internal/experiment"
	"github.com/san-kum/qmlab/internal/quantum"
	"github.com/san-kum/qmlab/internal/units"
	"github.com/spf13/cobra"
)

// input is one topic input as shown to the user.
type input struct {
	name  string
	label string
	si    float64
	res   units.Resolution
}

// addInputFlags registers --<param> and --<param>-unit for every parameter
// of every topic, plus the shared calculation flags.
func addInputFlags(cmd *cobra.Command, defPoints int) {
	f := cmd.Flags()
	f.String("preset", "", "use preset inputs")
	f.String("target", "", "quantity to solve for")
	f.Int("points", defPoints, "chart samples")

	for _, name := range paramNames(experiment.NewRegistry()) {
		flag := flagName(name)
		f.Float64(flag, 0, name+" in --"+flag+"-unit (SI if unset)")
		f.String(flag+"-unit", "", "unit of --"+flag)
	}
}

func flagName(param string) string {
	return strings.ReplaceAll(param, "_", "-")
}

func paramNames(reg *experiment.Registry) []string {
	seen := make(map[string]bool)
	var names []string
	for _, topicName := range reg.ListTopics() {
		topic, err := reg.GetTopic(topicName)
		if err != nil {
			continue
		}
		for name := range topic.GetParams() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// fieldsOf returns the input fields of a topic under every solve target, so
// that a parameter's kind is known even when it is the current unknown.
func fieldsOf(reg *experiment.Registry, name string) map[string]quantum.Field {
	fields := make(map[string]quantum.Field)
	probe, err := reg.GetTopic(name)
	if err != nil {
		return fields
	}
	for _, f := range probe.Fields() {
		fields[f.Name] = f
	}
	t, ok := probe.(quantum.Targeted)
	if !ok {
		return fields
	}
	for _, target := range t.Targets() {
		if err := t.SetTarget(target); err != nil {
			continue
		}
		for _, f := range probe.Fields() {
			if _, seen := fields[f.Name]; !seen {
				fields[f.Name] = f
			}
		}
	}
	return fields
}

// evaluate runs topicName with inputs layered as defaults, then --preset,
// then the config file, then explicit flags.
func evaluate(cmd *cobra.Command, topicName string) (*experiment.Result, []input, error) {
	registry := experiment.NewRegistry()
	topic, err := registry.GetTopic(topicName)
	if err != nil {
		return nil, nil, err
	}
	flags := cmd.Flags()

	cfg := config.DefaultConfig()
	cfg.Topic = topicName
	if presetName, _ := flags.GetString("preset"); presetName != "" {
		p := config.GetPreset(topicName, presetName)
		if p == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets(topicName))
		}
		cfg.Apply(p)
	}

	if configFile != "" {
		loaded, err := loadConfig()
		if err != nil {
			return nil, nil, err
		}
		cfg.Precision, cfg.Points, cfg.ExtraUnits = loaded.Precision, loaded.Points, loaded.ExtraUnits
		if loaded.Topic == topicName {
			cfg.Apply(&config.Config{Target: loaded.Target, Units: loaded.Units, Inputs: loaded.Inputs})
		}
	}

	if flags.Changed("target") {
		cfg.Target, _ = flags.GetString("target")
	}
	if flags.Changed("points") {
		cfg.Points, _ = flags.GetInt("points")
	} else if configFile == "" {
		cfg.Points, _ = flags.GetInt("points")
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, nil, err
	}

	fields := fieldsOf(registry, topicName)
	if cfg.Inputs == nil {
		cfg.Inputs = make(map[string]float64)
	}
	if cfg.Units == nil {
		cfg.Units = make(map[string]string)
	}
	for name := range topic.GetParams() {
		flag := flagName(name)
		if flags.Changed(flag + "-unit") {
			cfg.Units[name], _ = flags.GetString(flag + "-unit")
		}
		if !flags.Changed(flag) {
			continue
		}
		v, _ := flags.GetFloat64(flag)
		unit := cfg.Units[name]
		if unit == "" {
			cfg.Inputs[name] = v
			continue
		}
		res := table.Resolve(fields[name].Kind, unit)
		logResolution("--"+flag, res)
		cfg.Inputs[name] = v * res.Factor
	}

	exp := experiment.New(experiment.Config{
		Topic:  topicName,
		Target: cfg.Target,
		Params: cfg.Inputs,
		Points: cfg.Points,
	})
	if err := exp.Setup(topic); err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := exp.Run(ctx)
	if err != nil {
		return nil, nil, err
	}

	var inputs []input
	for _, f := range topic.Fields() {
		unit := cfg.Units[f.Name]
		if unit == "" {
			unit = f.Unit
		}
		r := table.Resolve(f.Kind, unit)
		if unit != "" {
			logResolution(f.Name, r)
		}
		inputs = append(inputs, input{name: f.Name, label: f.Label, si: res.Params[f.Name], res: r})
	}
	return res, inputs, nil
}
