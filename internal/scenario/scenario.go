// Package scenario reads YAML scenario documents: a language, a model
// theory, a model, and the formulas and schema instances to check against
// them.
//
// Formulas are written as explicit trees rather than concrete syntax:
//
//	formulas:
//	  - name: someone runs
//	    formula:
//	      quantifier: ∃
//	      var: x
//	      body: {atom: P, args: [x]}
package scenario

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/logics/pkg/logic"
	"github.com/gitrdm/logics/pkg/semantics"
)

// ErrInvalidScenario is wrapped by every error that rejects a document.
var ErrInvalidScenario = errors.New("invalid scenario")

// DefaultLanguage is used by documents that name no language.
const DefaultLanguage = "classical"

var languages = map[string]func() *logic.Language{
	"classical":            logic.ClassicalPredicateLanguage,
	"classical-infinite":   logic.ClassicalInfinitePredicateLanguage,
	"classical-functional": logic.ClassicalFunctionLanguage,
	"arithmetic":           logic.ArithmeticLanguage,
	"real-arithmetic":      logic.RealArithmeticLanguage,
	"truth":                logic.TruthPredicateLanguage,
}

// LanguageNames returns the language presets in sorted order.
func LanguageNames() []string {
	return slices.Sorted(maps.Keys(languages))
}

// Document is the on-disk shape of a scenario.
type Document struct {
	Name      string         `yaml:"name"`
	Language  LanguageSpec   `yaml:"language"`
	Theory    TheorySpec     `yaml:"theory"`
	Model     ModelSpec      `yaml:"model"`
	Formulas  []FormulaSpec  `yaml:"formulas"`
	Instances []InstanceSpec `yaml:"instances"`
}

// LanguageSpec names a preset and optionally extends its vocabulary. A bare
// string is read as the preset name.
type LanguageSpec struct {
	Preset     string         `yaml:"preset"`
	Constants  []string       `yaml:"constants"`
	Predicates map[string]int `yaml:"predicates"`
	Functions  map[string]int `yaml:"functions"`

	// TermPredicates admits predicate symbols as terms, for bounded
	// quantification such as ∀x ∈ P.
	TermPredicates bool `yaml:"term_predicates"`
}

// UnmarshalYAML accepts either a preset name or a mapping.
func (s *LanguageSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&s.Preset)
	}
	type plain LanguageSpec
	return node.Decode((*plain)(s))
}

// TheorySpec names a preset theory. The arithmetic-truth theory also reads
// its code table and the formulas its sentential constants stand for.
type TheorySpec struct {
	Preset    string         `yaml:"preset"`
	Codes     map[int]any    `yaml:"codes"`
	Constants map[string]any `yaml:"constants"`
}

// UnmarshalYAML accepts either a preset name or a mapping.
func (s *TheorySpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&s.Preset)
	}
	type plain TheorySpec
	return node.Decode((*plain)(s))
}

// FormulaSpec is a named formula, optionally evaluated under an assignment.
type FormulaSpec struct {
	Name       string         `yaml:"name"`
	Formula    any            `yaml:"formula"`
	Assignment map[string]any `yaml:"assignment"`

	// Expect, when set, is the value the formula should take.
	Expect string `yaml:"expect"`
}

// InstanceSpec pairs a candidate with a schema to match it against.
type InstanceSpec struct {
	Name      string `yaml:"name"`
	Candidate any    `yaml:"candidate"`
	Schema    any    `yaml:"schema"`
}

// NamedFormula is a decoded formula entry.
type NamedFormula struct {
	Name       string
	Formula    logic.Formula
	Assignment semantics.Assignment
	Expect     semantics.TruthValue
}

// Instance is a decoded candidate/schema pair.
type Instance struct {
	Name      string
	Candidate logic.Formula
	Schema    logic.Formula
}

// Scenario is a decoded, ready to evaluate document.
type Scenario struct {
	Name      string
	Path      string
	Language  *logic.Language
	Theory    *semantics.ModelTheory
	Model     *semantics.Model
	Formulas  []NamedFormula
	Instances []Instance
}

// HasModel reports whether the document described a model.
func (s *Scenario) HasModel() bool { return s.Model != nil }

// Loader decodes scenario documents.
type Loader struct {
	logger *slog.Logger

	// DefaultTheory is used when a document names none.
	DefaultTheory string
}

// NewLoader returns a loader that logs through logger, or slog.Default when
// logger is nil.
func NewLoader(logger *slog.Logger, defaultTheory string) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, DefaultTheory: defaultTheory}
}

// LoadFile reads and decodes one scenario file.
func (l *Loader) LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := l.Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// LoadAll reads the files concurrently and returns the scenarios in the
// order given. The first failure cancels the remaining reads.
func (l *Loader) LoadAll(ctx context.Context, paths []string, concurrency int) ([]*Scenario, error) {
	out := make([]*Scenario, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := l.LoadFile(path)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Load decodes a document from r. Unknown keys are rejected.
func (l *Loader) Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	s, err := l.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return s, nil
}

// Build turns a decoded document into a scenario.
func (l *Loader) Build(doc Document) (*Scenario, error) {
	lang, err := buildLanguage(doc.Language)
	if err != nil {
		return nil, err
	}
	theory, err := l.buildTheory(doc.Theory, lang)
	if err != nil {
		return nil, err
	}

	s := &Scenario{Name: doc.Name, Language: lang, Theory: theory}
	if doc.Model.Domain != nil || doc.Model.Kind != KindPlain || len(doc.Model.Denotations) > 0 {
		if s.Model, err = BuildModel(doc.Model, lang); err != nil {
			return nil, fmt.Errorf("model: %w", err)
		}
	}

	for i, fs := range doc.Formulas {
		nf, err := buildFormula(fs)
		if err != nil {
			return nil, fmt.Errorf("formula %d (%s): %w", i, fs.Name, err)
		}
		s.Formulas = append(s.Formulas, nf)
	}
	for i, is := range doc.Instances {
		inst, err := buildInstance(is)
		if err != nil {
			return nil, fmt.Errorf("instance %d (%s): %w", i, is.Name, err)
		}
		s.Instances = append(s.Instances, inst)
	}

	l.logger.Debug("scenario decoded",
		slog.String("name", s.Name),
		slog.String("theory", theory.Name()),
		slog.Int("formulas", len(s.Formulas)),
		slog.Int("instances", len(s.Instances)))
	return s, nil
}

func buildLanguage(spec LanguageSpec) (*logic.Language, error) {
	name := spec.Preset
	if name == "" {
		name = DefaultLanguage
	}
	preset, ok := languages[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown language %q (want one of %s)", name, strings.Join(LanguageNames(), ", "))
	}
	base := preset()
	if len(spec.Constants) == 0 && len(spec.Predicates) == 0 && len(spec.Functions) == 0 && !spec.TermPredicates {
		return base, nil
	}

	cfg := base.Config()
	for _, c := range spec.Constants {
		cfg.IndividualConstants = append(cfg.IndividualConstants, symbol(c))
	}
	cfg.PredicateLetters = extend(cfg.PredicateLetters, spec.Predicates)
	cfg.FunctionSymbols = extend(cfg.FunctionSymbols, spec.Functions)
	cfg.AllowPredicatesAsTerms = cfg.AllowPredicatesAsTerms || spec.TermPredicates
	lang, err := logic.NewLanguage(cfg)
	if err != nil {
		return nil, fmt.Errorf("language: %w", err)
	}
	return lang, nil
}

func extend(base, extra map[string]int) map[string]int {
	if len(extra) == 0 {
		return base
	}
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]int, len(extra))
	}
	for k, v := range extra {
		out[symbol(k)] = v
	}
	return out
}

func (l *Loader) buildTheory(spec TheorySpec, lang *logic.Language) (*semantics.ModelTheory, error) {
	name := spec.Preset
	if name == "" {
		name = l.DefaultTheory
	}
	if name == "" {
		name = "classical"
	}
	if strings.EqualFold(name, "arithmetic-truth") {
		return buildTruthTheory(spec)
	}
	if len(spec.Codes) > 0 || len(spec.Constants) > 0 {
		return nil, fmt.Errorf("theory %s takes no codes or constants", name)
	}
	return semantics.Preset(name, lang)
}

func buildTruthTheory(spec TheorySpec) (*semantics.ModelTheory, error) {
	codes := make(semantics.CodeTable, len(spec.Codes))
	for code, v := range spec.Codes {
		f, err := DecodeFormula(v)
		if err != nil {
			return nil, fmt.Errorf("code %d: %w", code, err)
		}
		codes[code] = f
	}
	constants := make(map[string]logic.Formula, len(spec.Constants))
	for name, v := range spec.Constants {
		f, err := DecodeFormula(v)
		if err != nil {
			return nil, fmt.Errorf("constant %s: %w", name, err)
		}
		constants[symbol(name)] = f
	}
	return semantics.ArithmeticTruth(codes.Decode, constants)
}

func buildFormula(spec FormulaSpec) (NamedFormula, error) {
	f, err := DecodeFormula(spec.Formula)
	if err != nil {
		return NamedFormula{}, err
	}
	values := make(map[string]semantics.Element, len(spec.Assignment))
	for k, v := range spec.Assignment {
		values[symbol(k)] = element(v)
	}
	name := spec.Name
	if name == "" {
		name = f.String()
	}
	return NamedFormula{
		Name:       name,
		Formula:    f,
		Assignment: semantics.NewAssignment(values),
		Expect:     semantics.TruthValue(spec.Expect),
	}, nil
}

func buildInstance(spec InstanceSpec) (Instance, error) {
	candidate, err := DecodeFormula(spec.Candidate)
	if err != nil {
		return Instance{}, fmt.Errorf("candidate: %w", err)
	}
	schema, err := DecodeFormula(spec.Schema)
	if err != nil {
		return Instance{}, fmt.Errorf("schema: %w", err)
	}
	name := spec.Name
	if name == "" {
		name = candidate.String()
	}
	return Instance{Name: name, Candidate: candidate, Schema: schema}, nil
}
