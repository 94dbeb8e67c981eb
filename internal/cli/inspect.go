package cli

import (
	"errors"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gitrdm/logics/pkg/logic"
)

// WFFResult reports the well-formedness of one formula.
type WFFResult struct {
	Scenario      string   `json:"scenario" yaml:"scenario"`
	Formula       string   `json:"formula" yaml:"formula"`
	WellFormed    bool     `json:"well_formed" yaml:"well_formed"`
	Reason        string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	FreeVariables []string `json:"free_variables,omitempty" yaml:"free_variables,omitempty"`
	Schematic     bool     `json:"schematic" yaml:"schematic"`
}

func newWFFCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wff <scenario.yaml>...",
		Short: "Check that the formulas of scenarios are well-formed",
		Long: `Check every formula, candidate and schema of the given scenarios against
the scenario's language, and report free variables and schematic formulas.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd.Context())
			scenarios, err := e.loader().LoadAll(cmd.Context(), args, e.cfg.Workers)
			if err != nil {
				return err
			}

			var results []WFFResult
			for _, s := range scenarios {
				check := func(name string, f logic.Formula) {
					res := WFFResult{
						Scenario:      s.Name,
						Formula:       name,
						FreeVariables: logic.FreeVariables(f, s.Language),
						Schematic:     logic.IsSchematic(f, s.Language),
					}
					var nwf *logic.NotWellFormedError
					switch err := s.Language.CheckWellFormed(f); {
					case err == nil:
						res.WellFormed = true
					case errors.As(err, &nwf) && nwf.Formula != nil:
						res.Reason = nwf.Formula.String() + ": " + nwf.Reason
					default:
						res.Reason = err.Error()
					}
					results = append(results, res)
				}
				for _, nf := range s.Formulas {
					check(nf.Name, nf.Formula)
				}
				for _, inst := range s.Instances {
					check(inst.Name+" (candidate)", inst.Candidate)
					check(inst.Name+" (schema)", inst.Schema)
				}
			}
			return renderWFF(e.renderer, results)
		},
	}
}

func renderWFF(r *renderer, results []WFFResult) error {
	if r.structured() {
		return r.encode(results)
	}
	rows := make([]table.Row, len(results))
	for i, res := range results {
		wf := r.verdict(res.WellFormed, "yes", "no")
		if res.Schematic {
			wf += " (schema)"
		}
		rows[i] = table.Row{res.Scenario, res.Formula, wf, strings.Join(res.FreeVariables, " "), res.Reason}
	}
	r.table([]string{"scenario", "formula", "well-formed", "free", "reason"}, rows)
	return nil
}

// MatchResult reports whether a candidate is an instance of a schema.
type MatchResult struct {
	Scenario  string `json:"scenario" yaml:"scenario"`
	Instance  string `json:"instance" yaml:"instance"`
	Candidate string `json:"candidate" yaml:"candidate"`
	Schema    string `json:"schema" yaml:"schema"`
	Matched   bool   `json:"matched" yaml:"matched"`

	// Substitution is the recovered dictionary. When matching fails it
	// holds the bindings made before the failure.
	Substitution string `json:"substitution" yaml:"substitution"`
}

func newMatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "match <scenario.yaml>...",
		Short: "Match candidate formulas against schemas",
		Long: `Match the candidate of every instance entry against its schema and print
the substitution that makes the schema equal to the candidate.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd.Context())
			scenarios, err := e.loader().LoadAll(cmd.Context(), args, e.cfg.Workers)
			if err != nil {
				return err
			}

			var results []MatchResult
			for _, s := range scenarios {
				for _, inst := range s.Instances {
					subst, ok := logic.Match(inst.Candidate, inst.Schema, s.Language, nil)
					results = append(results, MatchResult{
						Scenario:     s.Name,
						Instance:     inst.Name,
						Candidate:    inst.Candidate.String(),
						Schema:       inst.Schema.String(),
						Matched:      ok,
						Substitution: subst.String(),
					})
				}
			}
			return renderMatch(e.renderer, results)
		},
	}
}

func renderMatch(r *renderer, results []MatchResult) error {
	if r.structured() {
		return r.encode(results)
	}
	rows := make([]table.Row, len(results))
	for i, res := range results {
		rows[i] = table.Row{res.Scenario, res.Instance, res.Schema, r.verdict(res.Matched, "yes", "no"), res.Substitution}
	}
	r.table([]string{"scenario", "instance", "schema", "matched", "substitution"}, rows)
	return nil
}
