package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/registry"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
	"github.com/abhisek/mathgen/internal/ui/render"
)

type generatorDescription struct {
	ID         string                `json:"id" yaml:"id"`
	Descriptor problemgen.Descriptor `json:"descriptor" yaml:"descriptor"`
	Defaults   schema.Values         `json:"defaults" yaml:"defaults"`
	Categories []schema.Category     `json:"categories" yaml:"categories"`
	Presets    []schema.Preset       `json:"presets" yaml:"presets"`
}

var describeCmd = &cobra.Command{
	Use:   "describe <generator>",
	Short: "Show a generator's parameters and presets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := registry.Default().Build(args[0], rng.Default())
		if err != nil {
			return err
		}
		if cfg.Format == formatText {
			return render.Describe(cmd.OutOrStdout(), args[0], g)
		}
		s := g.ParameterSchema()
		return writeStructured(cmd.OutOrStdout(), cfg.Format, generatorDescription{
			ID:         args[0],
			Descriptor: g.Descriptor(),
			Defaults:   g.DefaultParameters(),
			Categories: s.SortedCategories(),
			Presets:    s.Presets(),
		})
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema <generator>",
	Short: "Print a generator's parameters as a JSON Schema document",
	Long: "Print a generator's parameters as a JSON Schema document. With --overlay\n" +
		"no parameter is required, matching partial parameter files.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := registry.Default().Build(args[0], rng.Default())
		if err != nil {
			return err
		}
		overlay, _ := cmd.Flags().GetBool("overlay")
		doc := g.ParameterSchema().JSONSchema(args[0])
		if overlay {
			doc = g.ParameterSchema().OverlaySchema(args[0])
		}
		format := cfg.Format
		if format == formatText {
			format = formatJSON
		}
		return writeStructured(cmd.OutOrStdout(), format, doc)
	},
}

func init() {
	addFormatFlag(describeCmd)
	addFormatFlag(schemaCmd)
	schemaCmd.Flags().Bool("overlay", false, "Describe partial overrides instead of a complete parameter set")
}
