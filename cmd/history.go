package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/store"
	"github.com/abhisek/mathgen/internal/ui/render"
	"github.com/abhisek/mathgen/internal/ui/theme"
)

type historyEntry struct {
	ID          string    `json:"id" yaml:"id"`
	WorksheetID string    `json:"worksheet" yaml:"worksheet"`
	Generator   string    `json:"generator" yaml:"generator"`
	Seed        uint64    `json:"seed" yaml:"seed"`
	Question    string    `json:"question" yaml:"question"`
	Answer      string    `json:"answer" yaml:"answer"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved problems",
	Long: "Show problems saved with --save, newest first. Each row's seed\n" +
		"regenerates the same problem with the same parameters and\n" +
		"--count 1 --seed <seed>.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")
		generatorID, _ := cmd.Flags().GetString("generator")
		worksheetID, _ := cmd.Flags().GetString("worksheet")

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.Problems()
		var recs []store.ProblemRecord
		switch {
		case worksheetID != "":
			recs, err = repo.ByWorksheet(ctx, worksheetID)
		case generatorID != "":
			recs, err = repo.ByGenerator(ctx, generatorID, limit)
		default:
			recs, err = repo.Recent(ctx, limit)
		}
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		entries := make([]historyEntry, len(recs))
		for i, r := range recs {
			entries[i] = historyEntry{
				ID:          r.ID,
				WorksheetID: r.WorksheetID,
				Generator:   r.GeneratorID,
				Seed:        r.Seed,
				Question:    r.Problem.Question,
				Answer:      r.Problem.Answer,
				CreatedAt:   r.CreatedAt,
			}
		}
		if cfg.Format != formatText {
			return writeStructured(cmd.OutOrStdout(), cfg.Format, entries)
		}

		if len(entries) == 0 {
			return render.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("No saved problems."))
		}
		total, err := repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count history: %w", err)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%-19s  %-24s  %-20s  %s\n", "Saved", "Generator", "Seed", "Problem")
		b.WriteString(strings.Repeat("─", 100) + "\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "%-19s  %-24s  %-20d  %s %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Generator,
				e.Seed,
				e.Question,
				theme.Hint.Render("= "+e.Answer),
			)
		}
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d of %d saved problems", len(entries), total)))
		return render.Fprintln(cmd.OutOrStdout(), b.String())
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum problems to show (0 for all)")
	historyCmd.Flags().String("generator", "", "Only show problems of this generator")
	historyCmd.Flags().String("worksheet", "", "Show one worksheet in item order")
	addFormatFlag(historyCmd)
}
