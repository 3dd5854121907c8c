package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// report is implemented by every command result
type report interface {
	header() []string
	rows() [][]string
}

func writeReport(w io.Writer, format string, r report) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write(r.header()); err != nil {
			return err
		}
		if err := cw.WriteAll(r.rows()); err != nil {
			return err
		}
		return cw.Error()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(r.header(), "\t"))
		for _, row := range r.rows() {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// finite returns nil for values JSON cannot carry, such as the -Inf dBm of
// an all-zero window.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func formatDbm(v *float64) string {
	if v == nil {
		return "-inf"
	}
	return fmt.Sprintf("%.3f", *v)
}
