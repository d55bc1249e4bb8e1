package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/logger"
	"github.com/abhisek/mathgen/internal/paramfile"
	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/registry"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
	"github.com/abhisek/mathgen/internal/ui/render"
	"github.com/abhisek/mathgen/internal/ui/theme"
	"github.com/abhisek/mathgen/internal/worksheet"
)

var validateFlags paramFlags

type validationReport struct {
	Generator string        `json:"generator" yaml:"generator"`
	Valid     bool          `json:"valid" yaml:"valid"`
	Errors    []string      `json:"errors" yaml:"errors"`
	Params    schema.Values `json:"params,omitempty" yaml:"params,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate [generator]",
	Short: "Check a parameter set without generating problems",
	Long: "Check a parameter set without generating problems. The overrides are\n" +
		"checked against the generator's JSON Schema, then resolved over the\n" +
		"defaults and checked against the generator's rules.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.FromContext(cmd.Context())

		req, err := validateFlags.resolve(args)
		if err != nil {
			return err
		}
		g, err := registry.Default().Build(req.GeneratorID, rng.Default())
		if err != nil {
			return err
		}

		report := validationReport{Generator: req.GeneratorID, Errors: []string{}}
		overrides, err := worksheet.Overrides(g, req.Preset, req.Params)
		if err == nil {
			err = paramfile.Check(req.GeneratorID, g.ParameterSchema(), overrides)
		}
		if err == nil {
			if r, ok := g.(problemgen.Resolver); ok {
				report.Params, err = r.Resolve(overrides)
			} else {
				_, err = g.GenerateProblem(overrides)
			}
		}

		var (
			cerr  *problemgen.ConfigurationError
			check *paramfile.CheckError
		)
		switch {
		case err == nil:
			report.Valid = true
		case errors.As(err, &cerr):
			report.Errors = cerr.Messages()
		case errors.As(err, &check):
			report.Errors = check.Violations
		default:
			return err
		}
		log.Debug("Validated parameters", "generator", req.GeneratorID, "valid", report.Valid)

		if cfg.Format == formatText {
			err = render.Fprintln(cmd.OutOrStdout(), reportText(report))
		} else {
			err = writeStructured(cmd.OutOrStdout(), cfg.Format, report)
		}
		if err != nil {
			return err
		}
		if !report.Valid {
			return fmt.Errorf("invalid parameters for %s", req.GeneratorID)
		}
		return nil
	},
}

func reportText(r validationReport) string {
	var b strings.Builder
	if r.Valid {
		b.WriteString(theme.Correct.Render("✓ Parameters are valid for " + r.Generator))
		for _, k := range sortedKeys(r.Params) {
			fmt.Fprintf(&b, "\n  %s = %v", theme.Key.Render(k), r.Params[k])
		}
		return b.String()
	}
	b.WriteString(theme.Incorrect.Render("✗ Invalid parameters for " + r.Generator))
	for _, e := range r.Errors {
		b.WriteString("\n  - " + e)
	}
	return b.String()
}

func init() {
	validateFlags.register(validateCmd)
	addFormatFlag(validateCmd)
}
