package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/paramfile"
	"github.com/abhisek/mathgen/internal/schema"
)

// paramFlags are the flags shared by commands that take a parameter set.
type paramFlags struct {
	preset     string
	set        []string
	paramsFile string
}

func (f *paramFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "Apply a named preset before other parameters")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "Set a parameter, e.g. --set maxValue=500 (repeatable)")
	cmd.Flags().StringVar(&f.paramsFile, "params", "", "Read the generator, preset and parameters from a YAML or JSON file")
}

// paramRequest is the merged result of a parameter file and flags.
type paramRequest struct {
	GeneratorID string
	Preset      string
	Params      schema.Values
	Count       int
	Seed        *uint64
}

// resolve merges, lowest first: the parameter file, --preset, --set. The
// generator comes from the argument or, failing that, the file.
func (f *paramFlags) resolve(args []string) (*paramRequest, error) {
	req := &paramRequest{Params: schema.Values{}}

	if f.paramsFile != "" {
		doc, err := paramfile.Load(f.paramsFile)
		if err != nil {
			return nil, err
		}
		req.GeneratorID = doc.Generator
		req.Preset = doc.Preset
		req.Count = doc.Count
		req.Seed = doc.Seed
		req.Params = doc.Params.Clone()
	}

	if len(args) > 0 {
		if req.GeneratorID != "" && req.GeneratorID != args[0] {
			return nil, fmt.Errorf("generator %q does not match %q in %s", args[0], req.GeneratorID, f.paramsFile)
		}
		req.GeneratorID = args[0]
	}
	if req.GeneratorID == "" {
		return nil, fmt.Errorf("no generator given: pass one as an argument or set it in --params")
	}

	if f.preset != "" {
		req.Preset = f.preset
	}

	set, err := paramfile.ParseAssignments(f.set)
	if err != nil {
		return nil, err
	}
	merged, err := schema.Overlay(req.Params, set)
	if err != nil {
		return nil, err
	}
	req.Params = merged
	return req, nil
}

// seed picks the seed from the flag when set, then the parameter file, then
// the configuration.
func (r *paramRequest) seed(cmd *cobra.Command) uint64 {
	if cmd.Flags().Changed("seed") || r.Seed == nil {
		return cfg.Seed
	}
	return *r.Seed
}

// count picks the count from the flag when set, then the parameter file.
func (r *paramRequest) count(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetInt("count")
	if cmd.Flags().Changed("count") || r.Count == 0 {
		return n
	}
	return r.Count
}
