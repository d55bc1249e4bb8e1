package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathgen/internal/registry"
	"github.com/abhisek/mathgen/internal/worksheet"
)

// execute runs the root command with args and returns what it wrote to
// stdout. Flag values are reset afterwards since commands are shared.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	defer resetFlags(rootCmd)

	walk(rootCmd, func(c *cobra.Command) { c.SetContext(t.Context()) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func walk(c *cobra.Command, fn func(*cobra.Command)) {
	fn(c)
	for _, sub := range c.Commands() {
		walk(sub, fn)
	}
}

func resetFlags(root *cobra.Command) {
	walk(root, func(c *cobra.Command) {
		reset := func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	})
}

func TestList(t *testing.T) {
	out, err := execute(t, "", "list")
	require.NoError(t, err)
	for _, id := range registry.Default().IDs() {
		assert.Contains(t, out, id)
	}

	out, err = execute(t, "", "list", "--category", "arithmetic", "--format", "json")
	require.NoError(t, err)
	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "arithmetic", e.Category)
	}
}

func TestDescribe(t *testing.T) {
	out, err := execute(t, "", "describe", "addition", "--format", "json")
	require.NoError(t, err)

	var desc generatorDescription
	require.NoError(t, json.Unmarshal([]byte(out), &desc))
	assert.Equal(t, "addition", desc.ID)
	assert.Equal(t, "Addition", desc.Descriptor.Name)
	assert.EqualValues(t, 100, desc.Defaults["maxValue"])
	assert.NotEmpty(t, desc.Presets)

	_, err = execute(t, "", "describe", "division")
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestSchema(t *testing.T) {
	out, err := execute(t, "", "schema", "multiplication")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "multiplication", doc["title"])
	assert.Equal(t, false, doc["additionalProperties"])
	assert.Contains(t, doc["properties"], "table")
}

func TestValidate(t *testing.T) {
	t.Run("Should accept valid overrides", func(t *testing.T) {
		out, err := execute(t, "", "validate", "addition", "--set", "maxValue=500", "--preset", "challenge")
		require.NoError(t, err)
		assert.Contains(t, out, "Parameters are valid for addition")
		assert.Contains(t, out, "500")
	})

	t.Run("Should report rule violations", func(t *testing.T) {
		out, err := execute(t, "", "validate", "addition", "--set", "minValue=500", "--set", "maxValue=10")
		require.Error(t, err)
		assert.Contains(t, out, "Minimum value cannot be greater than maximum value")
	})

	t.Run("Should report unknown keys", func(t *testing.T) {
		out, err := execute(t, "", "validate", "addition", "--set", "colour=red", "--format", "json")
		require.Error(t, err)

		var report validationReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.False(t, report.Valid)
		require.NotEmpty(t, report.Errors)
		assert.Contains(t, strings.Join(report.Errors, " "), "colour")
	})

	t.Run("Should require a generator", func(t *testing.T) {
		_, err := execute(t, "", "validate")
		assert.Error(t, err)
	})
}

func TestGenerate(t *testing.T) {
	run := func(t *testing.T) worksheet.Worksheet {
		out, err := execute(t, "", "generate", "subtraction", "--count", "3", "--seed", "42", "--format", "json")
		require.NoError(t, err)
		var ws worksheet.Worksheet
		require.NoError(t, json.Unmarshal([]byte(out), &ws))
		return ws
	}

	a := run(t)
	b := run(t)
	assert.Equal(t, uint64(42), a.Seed)
	require.Len(t, a.Items, 3)
	for i := range a.Items {
		assert.Equal(t, a.Items[i].Problem.Question, b.Items[i].Problem.Question)
	}

	out, err := execute(t, "", "generate", "addition", "--count", "2", "--seed", "1", "--answers")
	require.NoError(t, err)
	assert.Contains(t, out, "seed 1")
	assert.Contains(t, out, "Answer: ")

	_, err = execute(t, "", "generate", "addition", "--set", "addendCount=9")
	assert.Error(t, err)
}

func TestGenerate_ParamsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	writeFile(t, path, "generator: multiplication\ncount: 4\nseed: 7\nparams:\n  mode: table\n  table: 6\n")

	out, err := execute(t, "", "generate", "--params", path, "--format", "json")
	require.NoError(t, err)

	var ws worksheet.Worksheet
	require.NoError(t, json.Unmarshal([]byte(out), &ws))
	assert.Equal(t, "multiplication", ws.GeneratorID)
	assert.Equal(t, uint64(7), ws.Seed)
	assert.Len(t, ws.Items, 4)
	for _, item := range ws.Items {
		assert.Contains(t, item.Problem.Question, "6")
	}

	_, err = execute(t, "", "generate", "addition", "--params", path)
	assert.ErrorContains(t, err, "does not match")
}

func TestSaveAndHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	_, err := execute(t, "", "generate", "fraction-simplification", "--count", "3", "--seed", "5", "--save", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "", "history", "--db", db, "--format", "json")
	require.NoError(t, err)
	var entries []historyEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "fraction-simplification", e.Generator)
		assert.NotEmpty(t, e.Question)
	}

	out, err = execute(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "3 of 3 saved problems")
}

func TestPractice(t *testing.T) {
	ws, err := worksheet.NewService(registry.Default()).Generate(t.Context(), worksheet.Request{
		GeneratorID: "addition", Count: 2, Seed: 9, Unique: true,
	})
	require.NoError(t, err)

	stdin := ws.Items[0].Problem.Answer + "\n-1\n"
	out, err := execute(t, stdin, "practice", "addition", "--count", "2", "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, out, ws.Items[0].Problem.Question)
	assert.Contains(t, out, "Correct!")
	assert.Contains(t, out, "Not quite.")
	assert.Contains(t, out, "1 of 2 correct")
}

func TestPractice_Quit(t *testing.T) {
	out, err := execute(t, "q\n", "practice", "addition", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "No answers given.")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "mathgen (devel)\n", out)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
