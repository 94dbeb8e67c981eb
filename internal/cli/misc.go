package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gitrdm/logics/internal/scenario"
	"github.com/gitrdm/logics/pkg/logic"
	"github.com/gitrdm/logics/pkg/semantics"
)

func newRangeCommand() *cobra.Command {
	var arity, limit int

	cmd := &cobra.Command{
		Use:   "range <scenario.yaml>",
		Short: "List the range of a variable over a scenario's domain",
		Long: `List what a variable ranges over in the scenario's model. With --arity 0
that is the domain itself; with --arity n it is the range of an n-ary
predicate variable, every set of n-tuples of the domain, smallest first.`,
		Example: `  # The extensions a binary predicate variable can take
  logics range --arity 2 --limit 20 people.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if arity < 0 {
				return fmt.Errorf("arity must not be negative, got %d", arity)
			}
			if limit <= 0 {
				return fmt.Errorf("limit must be positive, got %d", limit)
			}
			e := getEnv(cmd.Context())
			s, err := e.loader().LoadFile(args[0])
			if err != nil {
				return err
			}
			if !s.HasModel() {
				return fmt.Errorf("%s: scenario has no model", s.Name)
			}

			seq := s.Model.Domain().All()
			if arity > 0 {
				seq = semantics.PredicateRange(s.Model.Domain(), arity)
			}
			var members []string
			for m := range semantics.WithContext(cmd.Context(), semantics.Limit(seq, limit)) {
				members = append(members, semantics.FormatElement(m))
			}
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			r := e.renderer
			if r.structured() {
				return r.encode(members)
			}
			rows := make([]table.Row, len(members))
			for i, m := range members {
				rows[i] = table.Row{i + 1, m}
			}
			r.table([]string{"#", "member"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&arity, "arity", 1, "arity of the predicate variable (0 for individuals)")
	cmd.Flags().IntVar(&limit, "limit", 16, "number of members to list")
	return cmd
}

// TheoryInfo describes a predefined model theory.
type TheoryInfo struct {
	Name       string   `json:"name" yaml:"name"`
	Values     []string `json:"values" yaml:"values"`
	Designated []string `json:"designated" yaml:"designated"`
	FastPaths  bool     `json:"fast_paths" yaml:"fast_paths"`
}

func newTheoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "theories",
		Short: "List the predefined model theories and languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var infos []TheoryInfo
			for _, name := range semantics.PresetNames() {
				mt, err := semantics.Preset(name, nil)
				if err != nil {
					return err
				}
				fc, fq := mt.FastPaths()
				infos = append(infos, TheoryInfo{
					Name:       name,
					Values:     truthStrings(mt.Values()),
					Designated: truthStrings(mt.Designated()),
					FastPaths:  fc || fq,
				})
			}

			r := getEnv(cmd.Context()).renderer
			if r.structured() {
				return r.encode(map[string]any{
					"theories":  infos,
					"languages": scenario.LanguageNames(),
				})
			}
			rows := make([]table.Row, len(infos))
			for i, info := range infos {
				rows[i] = table.Row{info.Name, info.Values, info.Designated, strconv.FormatBool(info.FastPaths)}
			}
			r.table([]string{"theory", "values", "designated", "fast paths"}, rows)
			r.printf("languages: %v\n", scenario.LanguageNames())
			return nil
		},
	}
}

func truthStrings(vs []semantics.TruthValue) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := logic.GetVersionInfo(GitCommit, BuildDate)
			r := getEnv(cmd.Context()).renderer
			if r.structured() {
				return r.encode(info)
			}
			r.printf("logics v%s (%s)\n", info.Version, info.GoVersion)
			if info.GitCommit != "" {
				r.printf("commit %s built %s\n", info.GitCommit, info.BuildDate)
			}
			return nil
		},
	}
}
