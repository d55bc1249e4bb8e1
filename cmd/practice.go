package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/logger"
	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/registry"
	"github.com/abhisek/mathgen/internal/ui/render"
	"github.com/abhisek/mathgen/internal/ui/theme"
	"github.com/abhisek/mathgen/internal/worksheet"
)

var practiceFlags paramFlags

var practiceCmd = &cobra.Command{
	Use:   "practice [generator]",
	Short: "Answer generated problems in the terminal",
	Long: "Answer generated problems one at a time. Wrong answers show the\n" +
		"correct answer and the worked steps. Enter q to stop early.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		req, err := practiceFlags.resolve(args)
		if err != nil {
			return err
		}
		save, _ := cmd.Flags().GetBool("save")
		unique, _ := cmd.Flags().GetBool("unique")

		opts := []worksheet.Option{worksheet.WithLogger(log), worksheet.WithWorkers(cfg.Workers)}
		if save {
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			opts = append(opts, worksheet.WithStore(st.Problems()))
		}

		ws, err := worksheet.NewService(registry.Default(), opts...).Generate(ctx, worksheet.Request{
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

		out := cmd.OutOrStdout()
		in := bufio.NewScanner(cmd.InOrStdin())
		correct, answered := 0, 0

		for _, item := range ws.Items {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := item.Problem
			header := fmt.Sprintf("%d/%d", item.Index+1, len(ws.Items))
			if err := render.Fprintln(out, "\n"+theme.Hint.Render(header)+" "+theme.Body.Render(p.Question)); err != nil {
				return err
			}
			fmt.Fprint(out, "> ")
			if !in.Scan() {
				break
			}
			answer := strings.TrimSpace(in.Text())
			if strings.EqualFold(answer, "q") {
				break
			}

			ok := problemgen.CheckAnswer(answer, p)
			answered++
			if ok {
				correct++
			}
			log.Debug("Checked answer", "item", item.Index, "correct", ok)
			if err := render.Fprintln(out, render.Feedback(ok, p, true)); err != nil {
				return err
			}
		}
		if err := in.Err(); err != nil {
			return fmt.Errorf("read answer: %w", err)
		}

		if answered == 0 {
			return render.Fprintln(out, "\n"+theme.Hint.Render("No answers given."))
		}
		score := float64(correct) / float64(answered)
		summary := fmt.Sprintf("%d of %d correct", correct, answered)
		return render.Fprintln(out, "\n"+render.ProgressBar(summary, score, 50))
	},
}

func init() {
	f := practiceCmd.Flags()
	practiceFlags.register(practiceCmd)
	f.Int("count", 5, fmt.Sprintf("Number of problems (1-%d)", worksheet.MaxCount))
	f.Uint64("seed", 0, "Seed for reproducible sessions (0 picks one)")
	f.Bool("unique", true, "Redraw problems whose question repeats")
	f.Bool("save", false, "Save the problems to history")
}
