package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-iq/algorithms/power"
	"github.com/RyanBlaney/sonido-iq/algorithms/spectral"
	"github.com/RyanBlaney/sonido-iq/config"
	"github.com/RyanBlaney/sonido-iq/logging"
)

// SpectrumReport lists the bins of a centered spectrum
type SpectrumReport struct {
	File           string         `json:"file" yaml:"file"`
	SampleRate     int            `json:"sample_rate" yaml:"sample_rate"`
	FrequencyRange int64          `json:"frequency_range" yaml:"frequency_range"`
	Resistance     float64        `json:"resistance" yaml:"resistance"`
	Shape          spectral.Shape `json:"shape" yaml:"shape"`
	Bins           []SpectrumBin  `json:"bins" yaml:"bins"`
}

// SpectrumBin is one frequency bin
type SpectrumBin struct {
	Index     int      `json:"index" yaml:"index"`
	Frequency float64  `json:"frequency" yaml:"frequency"`
	Real      float64  `json:"real" yaml:"real"`
	Imag      float64  `json:"imag" yaml:"imag"`
	PowerDbm  *float64 `json:"power_dbm" yaml:"power_dbm"`
}

func (r *SpectrumReport) header() []string {
	return []string{"BIN", "FREQUENCY (Hz)", "REAL", "IMAG", "POWER (dBm)"}
}

func (r *SpectrumReport) rows() [][]string {
	rows := make([][]string, len(r.Bins))
	for i, b := range r.Bins {
		rows[i] = []string{
			strconv.Itoa(b.Index),
			strconv.FormatFloat(b.Frequency, 'f', 3, 64),
			strconv.FormatFloat(b.Real, 'g', 6, 64),
			strconv.FormatFloat(b.Imag, 'g', 6, 64),
			formatDbm(b.PowerDbm),
		}
	}
	return rows
}

func newSpectrumCmd(a *app) *cobra.Command {
	defaults := config.DefaultAnalysisConfig()

	cmd := &cobra.Command{
		Use:   "spectrum <capture>",
		Short: "Centered spectrum of a capture",
		Long: `Transform a capture to the frequency domain and list every bin within
±frequency-range/2 Hz of DC. A frequency range of 0 lists the whole spectrum.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{configSection: "spectrum"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSpectrum(cmd, args[0])
		},
	}

	cmd.Flags().Int64("frequency-range", defaults.Spectrum.FrequencyRange, "frequency span in Hz centered on DC (0 = all bins)")
	return cmd
}

func (a *app) runSpectrum(cmd *cobra.Command, path string) error {
	td, err := a.loadCapture(path)
	if err != nil {
		return err
	}

	fd := td.ToFrequencyDomainWith(a.processor.Engine())
	freqs := fd.BinFrequencies()
	frequencyRange := a.config.Spectrum.FrequencyRange

	low := 0
	if frequencyRange > 0 {
		if low, _, err = spectral.SubsetBounds(fd.Len(), fd.SampleRate(), frequencyRange); err != nil {
			return fmt.Errorf("spectrum subset failed: %w", err)
		}
		if fd, err = a.processor.Subset(fd, frequencyRange); err != nil {
			return fmt.Errorf("spectrum subset failed: %w", err)
		}
	}

	shape := spectral.AnalyzeShapeAt(fd.Samples(), freqs[low:low+fd.Len()])
	if shape.PeakBin >= 0 {
		shape.PeakBin += low
	}

	resistance := a.config.Power.Resistance
	r := &SpectrumReport{
		File:           path,
		SampleRate:     fd.SampleRate(),
		FrequencyRange: frequencyRange,
		Resistance:     resistance,
		Shape:          shape,
		Bins:           make([]SpectrumBin, fd.Len()),
	}
	for i := range r.Bins {
		bin := fd.At(i)
		r.Bins[i] = SpectrumBin{
			Index:     low + i,
			Frequency: freqs[low+i],
			Real:      real(bin),
			Imag:      imag(bin),
			PowerDbm:  finite(power.WattsToDbm(power.MagnitudeToPower(power.Magnitude(bin), resistance))),
		}
	}

	a.logger.Debug("Spectrum computed", logging.Fields{"bins": len(r.Bins), "first_bin": low})
	return writeReport(cmd.OutOrStdout(), a.config.OutputFormat, r)
}
