// Package render writes worksheets, generator listings and practice
// feedback to a terminal. Styles are downsampled to what the writer
// supports, so piping to a file yields plain text.
package render

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/registry"
	"github.com/abhisek/mathgen/internal/schema"
	"github.com/abhisek/mathgen/internal/ui/theme"
	"github.com/abhisek/mathgen/internal/worksheet"
)

// Options controls worksheet rendering.
type Options struct {
	Answers bool
	Steps   bool
	LaTeX   bool
}

// Worksheet writes the numbered problems of ws.
func Worksheet(w io.Writer, ws *worksheet.Worksheet, opts Options) error {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Worksheet: " + ws.GeneratorID))
	b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("seed %d", ws.Seed)) + "\n\n")

	numWidth := len(strconv.Itoa(len(ws.Items)))
	indent := strings.Repeat(" ", numWidth+2)
	for _, item := range ws.Items {
		p := item.Problem
		num := fmt.Sprintf("%*d.", numWidth, item.Index+1)
		b.WriteString(theme.Key.Render(num) + " " + theme.Body.Render(question(p, opts.LaTeX)) + "\n")
		if opts.Steps {
			for _, step := range p.Steps {
				b.WriteString(indent + theme.Hint.Render(step) + "\n")
			}
		}
		if opts.Answers {
			b.WriteString(indent + theme.Correct.Render("Answer: "+answer(p, opts.LaTeX)) + "\n")
		}
	}
	_, err := lipgloss.Fprint(w, b.String())
	return err
}

func question(p *problemgen.Problem, latex bool) string {
	if latex && p.QuestionLaTeX != "" {
		return p.QuestionLaTeX
	}
	return p.Question
}

func answer(p *problemgen.Problem, latex bool) string {
	if latex && p.AnswerLaTeX != "" {
		return p.AnswerLaTeX
	}
	return p.Answer
}

// GeneratorList writes entries grouped by category, in first-seen order.
func GeneratorList(w io.Writer, entries []registry.Entry) error {
	if len(entries) == 0 {
		_, err := lipgloss.Fprint(w, theme.Hint.Render("No generators found.")+"\n")
		return err
	}

	idWidth := 0
	var categories []string
	groups := make(map[string][]registry.Entry)
	for _, e := range entries {
		idWidth = max(idWidth, lipgloss.Width(e.ID))
		cat := e.Descriptor.Category
		if _, ok := groups[cat]; !ok {
			categories = append(categories, cat)
		}
		groups[cat] = append(groups[cat], e)
	}

	var b strings.Builder
	for i, cat := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Heading.Render(cat) + "\n")
		for _, e := range groups[cat] {
			pad := strings.Repeat(" ", idWidth-lipgloss.Width(e.ID))
			b.WriteString("  " + theme.Key.Render(e.ID) + pad + "  ")
			b.WriteString(theme.Body.Render(e.Descriptor.Description))
			b.WriteString("  " + theme.Hint.Render(string(e.Descriptor.Difficulty)) + "\n")
		}
	}
	_, err := lipgloss.Fprint(w, b.String())
	return err
}

// Describe writes the descriptor, parameters and presets of a generator.
func Describe(w io.Writer, id string, g problemgen.Generator) error {
	d := g.Descriptor()
	defaults := g.DefaultParameters()
	s := g.ParameterSchema()

	var b strings.Builder
	b.WriteString(theme.Title.Render(d.Name) + "  " + theme.Hint.Render(id) + "\n")
	b.WriteString(theme.Body.Render(d.Description) + "\n\n")

	facts := []string{
		"Category: " + d.Category,
		"Difficulty: " + string(d.Difficulty),
	}
	if d.GradeLevel != "" {
		facts = append(facts, "Grade: "+d.GradeLevel)
	}
	if d.EstimatedTime != "" {
		facts = append(facts, "Time: "+d.EstimatedTime)
	}
	b.WriteString(theme.Hint.Render(strings.Join(facts, "  ")) + "\n")
	if len(d.Tags) > 0 {
		b.WriteString(theme.Hint.Render("Tags: "+strings.Join(d.Tags, ", ")) + "\n")
	}
	if d.ExampleProblem.Question != "" {
		example := d.ExampleProblem.Question + "  " + d.ExampleProblem.Answer
		b.WriteString(theme.Card.Render(example) + "\n")
	}

	for _, cat := range s.SortedCategories() {
		b.WriteString("\n" + theme.Heading.Render(cat.Label) + "\n")
		for _, p := range cat.Parameters {
			b.WriteString(parameterLine(p, defaults[p.Key]) + "\n")
		}
	}

	if presets := s.Presets(); len(presets) > 0 {
		b.WriteString("\n" + theme.Heading.Render("Presets") + "\n")
		for _, p := range presets {
			b.WriteString("  " + theme.Key.Render(p.ID) + "  " + theme.Body.Render(p.Label))
			b.WriteString("  " + theme.Hint.Render(formatValues(p.Values)) + "\n")
		}
	}

	_, err := lipgloss.Fprint(w, b.String())
	return err
}

func parameterLine(p schema.Parameter, def any) string {
	key := p.Key
	if p.Required {
		key += "*"
	}
	line := "  " + theme.Key.Render(key) + "  " + theme.Body.Render(p.Label)
	line += "  " + theme.Hint.Render(typeSummary(p))
	if def != nil {
		line += "  " + theme.Hint.Render("default "+formatValue(def))
	}
	return line
}

func typeSummary(p schema.Parameter) string {
	switch p.Type {
	case schema.TypeNumber:
		kind := "number"
		if p.Integer {
			kind = "integer"
		}
		switch {
		case p.Min != nil && p.Max != nil:
			return fmt.Sprintf("%s %s..%s", kind, formatFloat(*p.Min), formatFloat(*p.Max))
		case p.Min != nil:
			return fmt.Sprintf("%s >= %s", kind, formatFloat(*p.Min))
		case p.Max != nil:
			return fmt.Sprintf("%s <= %s", kind, formatFloat(*p.Max))
		}
		return kind
	case schema.TypeSelect:
		return "one of " + strings.Join(p.OptionValues(), "|")
	}
	return string(p.Type)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatValue(v any) string {
	if f, ok := schema.AsFloat(v); ok {
		return formatFloat(f)
	}
	return fmt.Sprint(v)
}

func formatValues(v schema.Values) string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + formatValue(v[k])
	}
	return strings.Join(parts, " ")
}

// Feedback reports whether a practice answer was right. Wrong answers show
// the correct answer and, when showSteps is set, the worked steps.
func Feedback(correct bool, p *problemgen.Problem, showSteps bool) string {
	if correct {
		return theme.Correct.Render("Correct!")
	}
	var b strings.Builder
	b.WriteString(theme.Incorrect.Render("Not quite.") + " ")
	b.WriteString(theme.Body.Render("The answer is " + p.Answer + "."))
	if showSteps {
		for _, step := range p.Steps {
			b.WriteString("\n  " + theme.Hint.Render(step))
		}
	}
	return b.String()
}

// ProgressBar renders a horizontal bar of the given total width, followed
// by the percentage.
func ProgressBar(label string, percent float64, width int) string {
	var result string
	if label != "" {
		result = theme.Body.Render(label) + "  "
	}

	barWidth := max(width-lipgloss.Width(result)-5, 4)
	filled := min(max(int(float64(barWidth)*percent), 0), barWidth)

	result += theme.ProgressFilled.Render(strings.Repeat("█", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat("░", barWidth-filled))
	return result + fmt.Sprintf(" %3.0f%%", percent*100)
}

// Fprintln writes s followed by a newline, downsampling styles to w.
func Fprintln(w io.Writer, s string) error {
	_, err := lipgloss.Fprintln(w, s)
	return err
}
