package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-iq/config"
	"github.com/RyanBlaney/sonido-iq/logging"
	"github.com/RyanBlaney/sonido-iq/processing"
	"github.com/RyanBlaney/sonido-iq/signal"
	"github.com/RyanBlaney/sonido-iq/transcode"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v          *viper.Viper
	configFile string

	config    *config.AnalysisConfig
	logger    logging.Logger
	processor *processing.Processor
}

const (
	// configSection annotates a command with the config section of its local flags
	configSection = "config_section"
	// unboundFlag marks flags that are not configuration keys
	unboundFlag = "unbound"
)

// flagKeys maps persistent flag names to configuration keys
var flagKeys = map[string]string{
	"log-level":   "log_level",
	"log-format":  "log_format",
	"output":      "output_format",
	"sample-rate": "input.sample_rate",
	"format":      "input.format",
	"byte-order":  "input.byte_order",
	"max-samples": "input.max_samples",
	"dc-cutoff":   "input.dc_cutoff",
	"kernel":      "spectrum.kernel",
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	defaults := config.DefaultAnalysisConfig()

	rootCmd := &cobra.Command{
		Use:   "iqsonar",
		Short: "I/Q capture analysis",
		Long: `Analyze complex (I/Q) radio captures.

Captures are read as interleaved float16/float32/float64 I and Q values or as
comma separated "re,im" text (files ending in .csv). Configuration comes from
flags, an optional YAML file (--config) and IQSONAR_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML config file")
	_ = flags.SetAnnotation("config", unboundFlag, nil)
	flags.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	flags.String("log-format", defaults.LogFormat, "log format (text, json)")
	flags.StringP("output", "o", defaults.OutputFormat, "output format (table, json, yaml, csv)")
	flags.IntP("sample-rate", "r", defaults.Input.SampleRate, "capture sample rate in Hz")
	flags.StringP("format", "f", defaults.Input.Format, "binary sample format (float16, float32, float64)")
	flags.String("byte-order", defaults.Input.ByteOrder, "binary byte order (big, little)")
	flags.Int("max-samples", defaults.Input.MaxSamples, "decode at most this many samples (0 = all)")
	flags.Float64("dc-cutoff", defaults.Input.DCCutoff, "DC blocker cutoff in Hz (0 = off)")
	flags.String("kernel", defaults.Spectrum.Kernel, "FFT kernel (go-dsp, gonum)")

	rootCmd.AddCommand(newPowerCmd(a), newSpectrumCmd(a), newFilterCmd(a))
	return rootCmd
}

// initialize reads the config file, binds flags and builds the logger and processor.
func (a *app) initialize(cmd *cobra.Command) error {
	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", a.configFile, err)
		}
	}

	if err := bindFlags(cmd, a.v); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.config = cfg

	a.logger = newLogger(cfg, cmd.ErrOrStderr())
	logging.SetGlobalLogger(a.logger)

	engine, err := cfg.Engine()
	if err != nil {
		return err
	}
	a.processor = processing.NewProcessorWithLogger(engine, a.logger)

	a.logger.Debug("Configuration loaded", logging.Fields{
		"config_file": a.v.ConfigFileUsed(),
		"sample_rate": cfg.Input.SampleRate,
		"format":      cfg.Input.Format,
		"kernel":      cfg.Spectrum.Kernel,
	})
	return nil
}

// bindFlags binds each flag to its configuration key. Flags set on the
// command line win over the config file and environment.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if _, ok := f.Annotations[unboundFlag]; ok || f.Name == "help" {
			return
		}

		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
			if section := cmd.Annotations[configSection]; section != "" {
				key = section + "." + key
			}
		}
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func newLogger(cfg *config.AnalysisConfig, w io.Writer) logging.Logger {
	if strings.EqualFold(cfg.LogFormat, "json") {
		return logging.NewJSONZapLogger(w, cfg.Level())
	}
	return logging.NewWriterLogger(w, cfg.Level())
}

// loadCapture decodes a capture file with the configured input settings.
func (a *app) loadCapture(path string) (*signal.TimeDomain, error) {
	decoderConfig, err := a.config.DecoderConfig()
	if err != nil {
		return nil, err
	}

	samples, err := transcode.NewDecoder(decoderConfig).DecodeFile(path)
	if err != nil {
		return nil, err
	}

	td, err := signal.NewTimeDomain(samples, a.config.Input.SampleRate)
	if err != nil {
		return nil, err
	}
	if cutoff := a.config.Input.DCCutoff; cutoff > 0 {
		if td, err = a.processor.RemoveDC(td, cutoff); err != nil {
			return nil, err
		}
	}

	a.logger.Info("Capture loaded", logging.Fields{
		"file":     path,
		"samples":  td.Len(),
		"duration": float64(td.Len()) / float64(td.SampleRate()),
	})
	return td, nil
}
