package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/logger"
	"github.com/abhisek/mathgen/internal/registry"
	"github.com/abhisek/mathgen/internal/ui/render"
	"github.com/abhisek/mathgen/internal/worksheet"
)

var generateFlags paramFlags

var generateCmd = &cobra.Command{
	Use:   "generate [generator]",
	Short: "Generate a worksheet of problems",
	Example: "  mathgen generate addition --count 10 --preset regrouping\n" +
		"  mathgen generate multiplication --set mode=table --set table=7 --answers\n" +
		"  mathgen generate --params worksheet.yaml --format json",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		req, err := generateFlags.resolve(args)
		if err != nil {
			return err
		}
		save, _ := cmd.Flags().GetBool("save")
		unique, _ := cmd.Flags().GetBool("unique")
		showMetrics, _ := cmd.Flags().GetBool("metrics")

		metricsReg := prometheus.NewRegistry()
		opts := []worksheet.Option{
			worksheet.WithLogger(log),
			worksheet.WithWorkers(cfg.Workers),
			worksheet.WithMetrics(worksheet.NewMetrics(metricsReg)),
		}
		if save {
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			opts = append(opts, worksheet.WithStore(st.Problems()))
		}

		svc := worksheet.NewService(registry.Default(), opts...)
		ws, err := svc.Generate(ctx, worksheet.Request{
			GeneratorID: req.GeneratorID,
			Preset:      req.Preset,
			Params:      req.Params,
			Count:       req.count(cmd),
			Seed:        req.seed(cmd),
			Unique:      unique,
			Save:        save,
		})
		if err != nil {
			return err
		}

		if cfg.Format == formatText {
			answers, _ := cmd.Flags().GetBool("answers")
			steps, _ := cmd.Flags().GetBool("steps")
			latex, _ := cmd.Flags().GetBool("latex")
			err = render.Worksheet(cmd.OutOrStdout(), ws, render.Options{Answers: answers, Steps: steps, LaTeX: latex})
		} else {
			err = writeStructured(cmd.OutOrStdout(), cfg.Format, ws)
		}
		if err != nil {
			return err
		}

		if showMetrics {
			return writeMetrics(cmd.ErrOrStderr(), metricsReg)
		}
		return nil
	},
}

// writeMetrics dumps the gathered metrics in the Prometheus text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	f := generateCmd.Flags()
	generateFlags.register(generateCmd)
	f.Int("count", 10, fmt.Sprintf("Number of problems (1-%d)", worksheet.MaxCount))
	f.Uint64("seed", 0, "Seed for reproducible worksheets (0 picks one)")
	f.Int("workers", cfg.Workers, "Problems generated concurrently")
	f.Bool("answers", false, "Show answers")
	f.Bool("steps", false, "Show worked steps")
	f.Bool("latex", false, "Show LaTeX instead of plain text")
	f.Bool("unique", false, "Redraw problems whose question repeats")
	f.Bool("save", false, "Save the problems to history")
	f.Bool("metrics", false, "Print generation metrics to stderr")
	addFormatFlag(generateCmd)
}
