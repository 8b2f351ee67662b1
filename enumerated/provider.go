package enumerated

import (
	"context"
	"fmt"
	"regexp"

	"github.com/gofhir/terminology"
)

// concept wraps one entry of the factory's concept table.
type concept struct {
	system string
	code   string
	idx    int
}

// Code implements terminology.Concept.
func (c concept) Code() string {
	return c.code
}

// System implements terminology.Concept.
func (c concept) System() string {
	return c.system
}

// Provider implements terminology.Provider over a finite concept table.
// It shares the factory's immutable indexes and is safe for concurrent
// use.
type Provider struct {
	factory     *Factory
	op          *terminology.Operation
	supplements []*terminology.Supplement
}

// System implements terminology.Provider.
func (p *Provider) System() string {
	return p.factory.system
}

// Version implements terminology.Provider.
func (p *Provider) Version() string {
	return p.factory.version
}

// Name implements terminology.Provider.
func (p *Provider) Name() string {
	return p.factory.name
}

// Description implements terminology.Provider.
func (p *Provider) Description() string {
	return p.factory.description
}

// TotalCount implements terminology.Provider.
func (p *Provider) TotalCount() int {
	return len(p.factory.entries)
}

// HasParents implements terminology.Provider.
func (p *Provider) HasParents() bool {
	return len(p.factory.children) > 0
}

// ContentMode implements terminology.Provider.
func (p *Provider) ContentMode() terminology.ContentMode {
	return terminology.ContentComplete
}

// VersionAlgorithm implements terminology.Provider.
func (p *Provider) VersionAlgorithm() terminology.VersionAlgorithm {
	return terminology.VersionNatural
}

// IsNotClosed implements terminology.Provider; a finite enumeration is
// always complete.
func (p *Provider) IsNotClosed() bool {
	return false
}

// Locate implements terminology.Provider by table lookup.
func (p *Provider) Locate(ctx context.Context, code string) (terminology.Concept, string, error) {
	if code == "" {
		return nil, "Empty code", nil
	}
	i, ok := p.factory.index[code]
	if !ok {
		return nil, fmt.Sprintf("Unknown code %q in %s", code, p.factory.system), nil
	}
	return concept{system: p.factory.system, code: code, idx: i}, "", nil
}

// Display implements terminology.Provider: a supplement display matching
// the language preferences wins, then the concept's own display, then the
// code itself.
func (p *Provider) Display(ctx context.Context, c terminology.Concept) (string, error) {
	ec, err := p.unwrap(c)
	if err != nil {
		return "", err
	}

	langs := p.languages()
	for _, s := range p.supplements {
		if d, ok := s.Display(ec.code, langs); ok {
			return d, nil
		}
	}
	if d := p.factory.entries[ec.idx].Display; d != "" {
		return d, nil
	}
	return ec.code, nil
}

// Definition implements terminology.Provider.
func (p *Provider) Definition(c terminology.Concept) string {
	ec, err := p.unwrap(c)
	if err != nil {
		return ""
	}
	return p.factory.entries[ec.idx].Definition
}

// IsAbstract implements terminology.Provider.
func (p *Provider) IsAbstract(c terminology.Concept) bool {
	ec, err := p.unwrap(c)
	if err != nil {
		return false
	}
	return p.factory.entries[ec.idx].Abstract
}

// IsInactive implements terminology.Provider.
func (p *Provider) IsInactive(c terminology.Concept) bool {
	return false
}

// IsDeprecated implements terminology.Provider.
func (p *Provider) IsDeprecated(c terminology.Concept) bool {
	return false
}

// Designations implements terminology.Provider.
func (p *Provider) Designations(ctx context.Context, c terminology.Concept, sink terminology.DesignationSink) error {
	ec, err := p.unwrap(c)
	if err != nil {
		return err
	}
	if d := p.factory.entries[ec.idx].Display; d != "" {
		sink.Add(terminology.Designation{Use: terminology.UseDisplay, Value: d})
	}
	for _, s := range p.supplements {
		for _, d := range s.Designations(ec.code) {
			sink.Add(d)
		}
	}
	return nil
}

// SameConcept implements terminology.Provider.
func (p *Provider) SameConcept(a, b terminology.Concept) bool {
	ca, aok := a.(concept)
	cb, bok := b.(concept)
	return aok && bok && ca.system == cb.system && ca.code == cb.code
}

// Subsumes implements terminology.Provider by walking the subsumedBy
// hierarchy in both directions.
func (p *Provider) Subsumes(ctx context.Context, a, b terminology.Concept) (terminology.SubsumptionOutcome, error) {
	ca, err := p.unwrap(a)
	if err != nil {
		return "", err
	}
	cb, err := p.unwrap(b)
	if err != nil {
		return "", err
	}
	switch {
	case ca.code == cb.code:
		return terminology.Equivalent, nil
	case p.factory.isAncestor(ca.code, cb.code):
		return terminology.Subsumes, nil
	case p.factory.isAncestor(cb.code, ca.code):
		return terminology.SubsumedBy, nil
	default:
		return terminology.NotSubsumed, nil
	}
}

// ExtendLookup implements terminology.Provider, emitting parent and child
// codes when requested.
func (p *Provider) ExtendLookup(ctx context.Context, c terminology.Concept, properties []string, out *terminology.LookupProperties) error {
	ec, err := p.unwrap(c)
	if err != nil {
		return err
	}
	for _, prop := range properties {
		switch prop {
		case "parent":
			for _, parent := range p.factory.entries[ec.idx].Parents {
				out.Add("parent", parent)
			}
		case "child":
			for _, child := range p.factory.children[ec.code] {
				out.Add("child", child)
			}
		}
	}
	return nil
}

// SupportsFilter implements terminology.Provider.
func (p *Provider) SupportsFilter(property string, op terminology.FilterOperator, value string) bool {
	switch {
	case property == "concept" && (op == terminology.OpIsA || op == terminology.OpDescendentOf):
		return true
	case property == "code" && (op == terminology.OpEquals || op == terminology.OpRegex):
		return true
	default:
		return false
	}
}

// Filter implements terminology.Provider. Results are always materialized
// eagerly: the enumeration is finite and the match keeps its order.
func (p *Provider) Filter(ctx context.Context, fc *terminology.FilterContext, property string, op terminology.FilterOperator, value string) error {
	if !p.SupportsFilter(property, op, value) {
		return fmt.Errorf("the filter %q %s %q is not supported for %s: %w",
			property, op, value, p.factory.system, terminology.ErrUnsupportedFilter)
	}

	match, err := p.matcher(property, op, value)
	if err != nil {
		return err
	}

	f := terminology.NewFilter(property, op, value)
	var results []terminology.Concept
	for i, e := range p.factory.entries {
		if match(e.Code) {
			results = append(results, concept{system: p.factory.system, code: e.Code, idx: i})
		}
	}
	f.Materialize(results)
	fc.Add(f)
	return nil
}

// matcher compiles the filter predicate into a per-code test.
func (p *Provider) matcher(property string, op terminology.FilterOperator, value string) (func(code string) bool, error) {
	switch {
	case property == "concept" && op == terminology.OpIsA:
		set := p.factory.descendants(value, true)
		return func(code string) bool { return set[code] }, nil
	case property == "concept" && op == terminology.OpDescendentOf:
		set := p.factory.descendants(value, false)
		return func(code string) bool { return set[code] }, nil
	case property == "code" && op == terminology.OpEquals:
		return func(code string) bool { return code == value }, nil
	case property == "code" && op == terminology.OpRegex:
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("invalid regex filter %q for %s: %w", value, p.factory.system, err)
		}
		return re.MatchString, nil
	default:
		return nil, fmt.Errorf("the filter %q %s %q is not supported for %s: %w",
			property, op, value, p.factory.system, terminology.ErrUnsupportedFilter)
	}
}

// FilterMore implements terminology.Provider.
func (p *Provider) FilterMore(ctx context.Context, f *terminology.Filter) (bool, error) {
	if !f.Materialized() {
		return false, fmt.Errorf("iterate %s filter: %w", p.factory.system, terminology.ErrNotMaterialized)
	}
	return f.Advance(), nil
}

// FilterConcept implements terminology.Provider.
func (p *Provider) FilterConcept(ctx context.Context, f *terminology.Filter) (terminology.Concept, error) {
	return f.Current()
}

// FilterLocate implements terminology.Provider.
func (p *Provider) FilterLocate(ctx context.Context, f *terminology.Filter, code string) (terminology.Concept, string, error) {
	c, msg, err := p.Locate(ctx, code)
	if err != nil || c == nil {
		return nil, msg, err
	}

	match, err := p.matcher(f.Property, f.Op, f.Criterion)
	if err != nil {
		return nil, "", err
	}
	if !match(code) {
		return nil, fmt.Sprintf("the code %q does not match the filter %s %s %q",
			code, f.Property, f.Op, f.Criterion), nil
	}
	return c, "", nil
}

// FilterCheck implements terminology.Provider.
func (p *Provider) FilterCheck(ctx context.Context, f *terminology.Filter, c terminology.Concept) (bool, string, error) {
	ec, err := p.unwrap(c)
	if err != nil {
		return false, "", err
	}
	found, msg, err := p.FilterLocate(ctx, f, ec.code)
	if err != nil {
		return false, "", err
	}
	return found != nil, msg, nil
}

// FilterSize implements terminology.Provider.
func (p *Provider) FilterSize(f *terminology.Filter) (int, error) {
	return f.Size()
}

// ExecuteFilters implements terminology.Provider.
func (p *Provider) ExecuteFilters(ctx context.Context, fc *terminology.FilterContext) ([]*terminology.Filter, error) {
	return fc.Filters(), nil
}

// FiltersNotClosed implements terminology.Provider.
func (p *Provider) FiltersNotClosed(fc *terminology.FilterContext) bool {
	return false
}

func (p *Provider) unwrap(c terminology.Concept) (concept, error) {
	ec, ok := c.(concept)
	if !ok || ec.system != p.factory.system {
		return concept{}, fmt.Errorf("concept %T for %s: %w", c, p.factory.system, terminology.ErrWrongProvider)
	}
	return ec, nil
}

func (p *Provider) languages() terminology.Languages {
	if p.op == nil {
		return terminology.Languages{}
	}
	return p.op.Languages
}

// Verify interface compliance
var _ terminology.Provider = (*Provider)(nil)
