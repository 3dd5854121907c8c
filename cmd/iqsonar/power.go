package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-iq/algorithms/temporal"
	"github.com/RyanBlaney/sonido-iq/config"
	"github.com/RyanBlaney/sonido-iq/logging"
)

// PowerReport lists the average power of every analysis window
type PowerReport struct {
	File       string        `json:"file" yaml:"file"`
	SampleRate int           `json:"sample_rate" yaml:"sample_rate"`
	Resistance float64       `json:"resistance" yaml:"resistance"`
	Offset     float64       `json:"offset" yaml:"offset"`
	Interval   float64       `json:"interval" yaml:"interval"`
	Period     float64       `json:"period" yaml:"period"`
	Windows    []PowerWindow `json:"windows" yaml:"windows"`
}

// PowerWindow is one analysis window. PowerDbm is nil for silent windows.
type PowerWindow struct {
	Index    int      `json:"index" yaml:"index"`
	Start    float64  `json:"start" yaml:"start"`
	Samples  int      `json:"samples" yaml:"samples"`
	PowerDbm *float64 `json:"power_dbm" yaml:"power_dbm"`
}

func (r *PowerReport) header() []string {
	return []string{"WINDOW", "START (s)", "SAMPLES", "POWER (dBm)"}
}

func (r *PowerReport) rows() [][]string {
	rows := make([][]string, len(r.Windows))
	for i, w := range r.Windows {
		rows[i] = []string{
			strconv.Itoa(w.Index),
			strconv.FormatFloat(w.Start, 'f', 6, 64),
			strconv.Itoa(w.Samples),
			formatDbm(w.PowerDbm),
		}
	}
	return rows
}

func newPowerCmd(a *app) *cobra.Command {
	defaults := config.DefaultAnalysisConfig().Power

	cmd := &cobra.Command{
		Use:   "power <capture>",
		Short: "Average power per time window",
		Long: `Split a capture into windows of --interval seconds, one every --period
seconds starting --offset seconds in, and report the average power of each
window in dBm. Trailing partial windows are dropped.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{configSection: "power"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPower(cmd, args[0])
		},
	}

	cmd.Flags().Float64("resistance", defaults.Resistance, "load resistance in ohms")
	cmd.Flags().Float64("offset", defaults.Offset, "seconds to skip before the first window")
	cmd.Flags().Float64("interval", defaults.Interval, "window length in seconds")
	cmd.Flags().Float64("period", defaults.Period, "seconds between window starts")
	cmd.Flags().Int("workers", defaults.Workers, "parallel workers (0 = GOMAXPROCS)")
	return cmd
}

func (a *app) runPower(cmd *cobra.Command, path string) error {
	td, err := a.loadCapture(path)
	if err != nil {
		return err
	}

	p := a.config.Power
	powers, err := a.processor.PowerForTimeIntervalParallel(cmd.Context(), td, p.Resistance, p.Offset, p.Interval, p.Period, p.Workers)
	if err != nil {
		return fmt.Errorf("power analysis failed: %w", err)
	}

	samples, err := temporal.ToSamples(td.SampleRate(), p.Offset, p.Interval, p.Period)
	if err != nil {
		return err
	}
	windows := samples.Windows(td.Len())

	r := &PowerReport{
		File:       path,
		SampleRate: td.SampleRate(),
		Resistance: p.Resistance,
		Offset:     p.Offset,
		Interval:   p.Interval,
		Period:     p.Period,
		Windows:    make([]PowerWindow, len(powers)),
	}
	for i, dbm := range powers {
		r.Windows[i] = PowerWindow{
			Index:    i,
			Start:    float64(windows[i].Start) / float64(td.SampleRate()),
			Samples:  windows[i].Len(),
			PowerDbm: finite(dbm),
		}
	}

	a.logger.Debug("Power analysis complete", logging.Fields{"windows": len(powers)})
	return writeReport(cmd.OutOrStdout(), a.config.OutputFormat, r)
}
