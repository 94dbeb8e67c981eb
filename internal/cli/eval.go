package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gitrdm/logics/internal/config"
	"github.com/gitrdm/logics/internal/parallel"
	"github.com/gitrdm/logics/internal/scenario"
	"github.com/gitrdm/logics/pkg/semantics"
)

// EvalResult is the outcome of evaluating one formula.
type EvalResult struct {
	Scenario   string `json:"scenario" yaml:"scenario"`
	Theory     string `json:"theory" yaml:"theory"`
	Formula    string `json:"formula" yaml:"formula"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
	Designated bool   `json:"designated" yaml:"designated"`
	Expect     string `json:"expect,omitempty" yaml:"expect,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	Elapsed    string `json:"elapsed" yaml:"elapsed"`
}

// Failed reports whether the evaluation errored or missed its expectation.
func (r EvalResult) Failed() bool {
	return r.Error != "" || (r.Expect != "" && r.Expect != r.Value)
}

type evalJob struct {
	scenario *scenario.Scenario
	theory   *semantics.ModelTheory
	model    *semantics.Model
	formula  scenario.NamedFormula
}

func newEvalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <scenario.yaml>...",
		Short: "Evaluate the formulas of scenarios in their models",
		Long: `Evaluate every formula of the given scenarios in the scenario's model.

Formulas are evaluated concurrently. Infinite domains are cut to
--range-limit elements and each formula gets --timeout to finish. A
formula whose value differs from its expect field fails the command.`,
		Example: `  # Evaluate a scenario
  logics eval people.yaml

  # Evaluate without the short-circuiting clauses, as JSON
  logics eval --fast-path=false -o json people.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd.Context())
			scenarios, err := e.loader().LoadAll(cmd.Context(), args, e.cfg.Workers)
			if err != nil {
				return err
			}
			results, err := evaluate(cmd.Context(), e.cfg, e.logger, scenarios)
			if err != nil {
				return err
			}
			return renderEval(e.renderer, results)
		},
	}
}

// evaluate runs every formula of every scenario on a worker pool and
// returns the results in document order.
func evaluate(ctx context.Context, cfg *config.Config, logger *slog.Logger, scenarios []*scenario.Scenario) ([]EvalResult, error) {
	var jobs []evalJob
	for _, s := range scenarios {
		if !s.HasModel() {
			return nil, fmt.Errorf("%s: scenario has no model", s.Name)
		}
		theory, model := s.Theory, s.Model
		if !cfg.FastPath {
			theory = theory.WithoutFastPaths()
		}
		if cfg.RangeLimit > 0 && !model.Domain().Finite() {
			logger.Debug("limiting infinite domain", slog.String("scenario", s.Name), slog.Int("limit", cfg.RangeLimit))
			model = model.WithDomain(semantics.LimitDomain(model.Domain(), cfg.RangeLimit))
		}
		for _, nf := range s.Formulas {
			jobs = append(jobs, evalJob{scenario: s, theory: theory, model: model, formula: nf})
		}
	}

	pool := parallel.NewWorkerPool(cfg.Workers)
	defer pool.Shutdown()

	return parallel.Map(ctx, pool, jobs, func(ctx context.Context, j evalJob) EvalResult {
		return runJob(ctx, cfg.Timeout, logger, j)
	})
}

func runJob(ctx context.Context, timeout time.Duration, logger *slog.Logger, j evalJob) EvalResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res := EvalResult{
		Scenario: j.scenario.Name,
		Theory:   j.theory.Name(),
		Formula:  j.formula.Name,
		Expect:   string(j.formula.Expect),
	}
	start := time.Now()
	v, err := j.theory.ValuationContext(ctx, j.formula.Formula, j.model, j.formula.Assignment)
	res.Elapsed = time.Since(start).Round(time.Microsecond).String()
	if err != nil {
		res.Error = err.Error()
		logger.Warn("evaluation failed",
			slog.String("scenario", res.Scenario),
			slog.String("formula", res.Formula),
			slog.Any("error", err))
		return res
	}
	res.Value = string(v)
	res.Designated = j.theory.IsDesignated(v)
	logger.Debug("evaluated",
		slog.String("scenario", res.Scenario),
		slog.String("formula", res.Formula),
		slog.String("value", res.Value),
		slog.String("elapsed", res.Elapsed))
	return res
}

func renderEval(r *renderer, results []EvalResult) error {
	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}

	if r.structured() {
		if err := r.encode(results); err != nil {
			return err
		}
	} else {
		rows := make([]table.Row, len(results))
		for i, res := range results {
			value := res.Value
			switch {
			case res.Error != "":
				value = r.bad.Sprint(res.Error)
			case res.Designated:
				value = r.good.Sprint(value)
			default:
				value = r.warn.Sprint(value)
			}
			check := ""
			if res.Expect != "" {
				check = r.verdict(!res.Failed(), "ok", "want "+res.Expect)
			}
			rows[i] = table.Row{res.Scenario, res.Theory, res.Formula, value, check}
		}
		r.table([]string{"scenario", "theory", "formula", "value", "check"}, rows)
		r.printf("%d formulas, %d failed\n", len(results), failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d formulas failed", failed, len(results))
	}
	return nil
}
