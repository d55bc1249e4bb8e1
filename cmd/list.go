package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/registry"
	"github.com/abhisek/mathgen/internal/ui/render"
)

type listEntry struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	Difficulty  string   `json:"difficulty" yaml:"difficulty"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available generators",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		query, _ := cmd.Flags().GetString("search")

		reg := registry.Default()
		entries := reg.Search(query)
		if category != "" {
			filtered := entries[:0]
			for _, e := range entries {
				if e.Descriptor.Category == category {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}

		if cfg.Format == formatText {
			return render.GeneratorList(cmd.OutOrStdout(), entries)
		}
		out := make([]listEntry, len(entries))
		for i, e := range entries {
			out[i] = listEntry{
				ID:          e.ID,
				Name:        e.Descriptor.Name,
				Category:    e.Descriptor.Category,
				Difficulty:  string(e.Descriptor.Difficulty),
				Description: e.Descriptor.Description,
				Tags:        e.Descriptor.Tags,
			}
		}
		return writeStructured(cmd.OutOrStdout(), cfg.Format, out)
	},
}

func init() {
	listCmd.Flags().String("category", "", "Only list generators in this category")
	listCmd.Flags().String("search", "", "Filter by name, description, category or tag")
	addFormatFlag(listCmd)
}
