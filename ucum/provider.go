package ucum

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofhir/terminology"
	"github.com/gofhir/terminology/cache"
	"github.com/gofhir/terminology/pkg/logger"
)

// concept wraps one grammar-validated unit expression. Equality and
// filtering work on the surface string; canonicalization is never applied
// for equality.
type concept struct {
	code string
}

// Code implements terminology.Concept.
func (c concept) Code() string {
	return c.code
}

// System implements terminology.Concept.
func (c concept) System() string {
	return SystemURI
}

// Provider implements terminology.Provider over the UCUM grammar. It is
// stateless apart from the per-operation parameters it was built with and
// is safe for concurrent use; the common-units enumeration and the
// canonical-form cache are shared with every other provider its factory
// built.
type Provider struct {
	engine      Service
	version     string
	common      []CommonUnit
	index       map[string][]int
	canon       *cache.Cache[string, string]
	metrics     *terminology.Metrics
	op          *terminology.Operation
	supplements []*terminology.Supplement
}

// System implements terminology.Provider.
func (p *Provider) System() string {
	return SystemURI
}

// Version implements terminology.Provider.
func (p *Provider) Version() string {
	return p.version
}

// Name implements terminology.Provider.
func (p *Provider) Name() string {
	return "UCUM"
}

// Description implements terminology.Provider.
func (p *Provider) Description() string {
	return "Unified Code for Units of Measure (UCUM)"
}

// TotalCount implements terminology.Provider. The UCUM code space is
// defined by a grammar and has no finite count.
func (p *Provider) TotalCount() int {
	return terminology.CountUnbounded
}

// HasParents implements terminology.Provider; UCUM has no hierarchy.
func (p *Provider) HasParents() bool {
	return false
}

// ContentMode implements terminology.Provider.
func (p *Provider) ContentMode() terminology.ContentMode {
	return terminology.ContentComplete
}

// VersionAlgorithm implements terminology.Provider; UCUM versions are not
// semver.
func (p *Provider) VersionAlgorithm() terminology.VersionAlgorithm {
	return terminology.VersionNatural
}

// IsNotClosed implements terminology.Provider. Any filter result over
// UCUM is necessarily an incomplete enumeration of an infinite space.
func (p *Provider) IsNotClosed() bool {
	return true
}

// Locate validates code against the grammar. Validation is the lookup:
// there is no table to consult, so a code the grammar accepts is located
// and a code it rejects yields the engine's message verbatim.
func (p *Provider) Locate(ctx context.Context, code string) (terminology.Concept, string, error) {
	if code == "" {
		p.metrics.RecordLocate(false)
		return nil, "Empty code", nil
	}
	msg, err := p.engine.Validate(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("validate %q: %w", code, err)
	}
	if msg != "" {
		p.metrics.RecordLocate(false)
		return nil, msg, nil
	}
	p.metrics.RecordLocate(true)
	return concept{code: code}, "", nil
}

// Display implements terminology.Provider.
//
// Resolution order: a common-units display (English-or-no-preference
// only), then a supplement display matching the preference set, then the
// grammar engine's analysis (English-or-no-preference only), then the
// code itself. The asymmetry is deliberate: the analysis is an English
// rendering and there is no reliable translation source for arbitrary
// grammar-derived descriptions, so other languages fall back to the code
// rather than a speculative translation.
func (p *Provider) Display(ctx context.Context, c terminology.Concept) (string, error) {
	code, err := p.conceptCode(c)
	if err != nil {
		return "", err
	}
	p.metrics.RecordDisplay()

	langs := p.languages()
	english := langs.IsEnglishOrNothing()

	if english {
		for _, i := range p.index[code] {
			if d := strings.TrimSpace(p.common[i].Display); d != "" {
				return d, nil
			}
		}
	}

	for _, s := range p.supplements {
		if d, ok := s.Display(code, langs); ok {
			return d, nil
		}
	}

	if english {
		analysis, err := p.engine.Analyse(ctx, code)
		if err != nil {
			return "", fmt.Errorf("analyse %q: %w", code, err)
		}
		return analysis, nil
	}

	return code, nil
}

// Definition implements terminology.Provider; UCUM codes carry no
// definition text separate from their display.
func (p *Provider) Definition(c terminology.Concept) string {
	return ""
}

// IsAbstract implements terminology.Provider; the grammar has no abstract
// codes.
func (p *Provider) IsAbstract(c terminology.Concept) bool {
	return false
}

// IsInactive implements terminology.Provider.
func (p *Provider) IsInactive(c terminology.Concept) bool {
	return false
}

// IsDeprecated implements terminology.Provider.
func (p *Provider) IsDeprecated(c terminology.Concept) bool {
	return false
}

// Designations implements terminology.Provider. It always emits the code
// itself as a display designation and the grammar analysis as an English
// synonym, plus a synonym for every common-units display distinct from
// the code and anything the supplements register.
func (p *Provider) Designations(ctx context.Context, c terminology.Concept, sink terminology.DesignationSink) error {
	code, err := p.conceptCode(c)
	if err != nil {
		return err
	}

	sink.Add(terminology.Designation{Use: terminology.UseDisplay, Value: code})

	analysis, err := p.engine.Analyse(ctx, code)
	if err != nil {
		return fmt.Errorf("analyse %q: %w", code, err)
	}
	sink.Add(terminology.Designation{Language: "en", Use: terminology.UseSynonym, Value: analysis})

	for _, i := range p.index[code] {
		if d := strings.TrimSpace(p.common[i].Display); d != "" && d != code {
			sink.Add(terminology.Designation{Language: "en", Use: terminology.UseSynonym, Value: d})
		}
	}

	for _, s := range p.supplements {
		for _, d := range s.Designations(code) {
			sink.Add(d)
		}
	}
	return nil
}

// SameConcept implements terminology.Provider. Two unit expressions are
// the same concept when their surface strings match; "mg" and "1000 ug"
// are distinct concepts even though their canonical forms agree.
func (p *Provider) SameConcept(a, b terminology.Concept) bool {
	ca, aok := a.(concept)
	cb, bok := b.(concept)
	return aok && bok && ca.code == cb.code
}

// Subsumes implements terminology.Provider; UCUM defines no subsumption.
func (p *Provider) Subsumes(ctx context.Context, a, b terminology.Concept) (terminology.SubsumptionOutcome, error) {
	if _, err := p.conceptCode(a); err != nil {
		return "", err
	}
	if _, err := p.conceptCode(b); err != nil {
		return "", err
	}
	return terminology.NotSubsumed, nil
}

// ExtendLookup implements terminology.Provider. The canonical form is
// best-effort metadata here: a code the engine cannot canonicalize simply
// gets no canonical property.
func (p *Provider) ExtendLookup(ctx context.Context, c terminology.Concept, properties []string, out *terminology.LookupProperties) error {
	code, err := p.conceptCode(c)
	if err != nil {
		return err
	}
	for _, prop := range properties {
		if prop != "canonical" {
			continue
		}
		canonical, err := p.canonical(ctx, code)
		if err != nil {
			logger.Debug("skipping canonical property for %q: %v", code, err)
			continue
		}
		out.Add("canonical", canonical)
	}
	return nil
}

// SupportsFilter implements terminology.Provider. The only filter the
// grammar can answer is canonical-form equality.
func (p *Provider) SupportsFilter(property string, op terminology.FilterOperator, value string) bool {
	return property == "canonical" && op == terminology.OpEquals
}

// Filter implements terminology.Provider. For an expansion the result set
// is materialized against the common-units enumeration: each entry whose
// precomputed canonical form equals value is kept, in enumeration order.
// Without an enumeration the infinite space cannot be expanded.
func (p *Provider) Filter(ctx context.Context, fc *terminology.FilterContext, property string, op terminology.FilterOperator, value string) error {
	if !p.SupportsFilter(property, op, value) {
		return fmt.Errorf("the filter %q %s %q is not supported for %s: %w",
			property, op, value, SystemURI, terminology.ErrUnsupportedFilter)
	}

	f := terminology.NewFilter(property, op, value)

	if fc.ForExpansion() {
		if len(p.common) == 0 {
			return fmt.Errorf("cannot expand a %s filter on %s unless a common units list is available: %w",
				property, SystemURI, terminology.ErrNoEnumeration)
		}
		var results []terminology.Concept
		for _, cu := range p.common {
			if cu.Canonical != "" && cu.Canonical == value {
				results = append(results, concept{code: cu.Code})
			}
		}
		f.Materialize(results)
		p.metrics.RecordFilterMaterialized()
	}

	fc.Add(f)
	return nil
}

// FilterMore implements terminology.Provider.
func (p *Provider) FilterMore(ctx context.Context, f *terminology.Filter) (bool, error) {
	if !f.Materialized() {
		return false, fmt.Errorf("iterate %s filter: %w", SystemURI, terminology.ErrNotMaterialized)
	}
	return f.Advance(), nil
}

// FilterConcept implements terminology.Provider.
func (p *Provider) FilterConcept(ctx context.Context, f *terminology.Filter) (terminology.Concept, error) {
	return f.Current()
}

// FilterLocate implements terminology.Provider. It re-validates the code
// and compares its canonical form to the filter criterion without moving
// the cursor; the mismatch message names both canonical forms so callers
// can surface why the candidate failed.
func (p *Provider) FilterLocate(ctx context.Context, f *terminology.Filter, code string) (terminology.Concept, string, error) {
	if code == "" {
		return nil, "Empty code", nil
	}
	msg, err := p.engine.Validate(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("validate %q: %w", code, err)
	}
	if msg != "" {
		return nil, msg, nil
	}

	if f.Criterion == "" {
		// No criterion: the filter admits any code the enumeration lists,
		// or any grammar-valid code when there is no enumeration.
		if len(p.common) > 0 {
			if _, ok := p.index[code]; !ok {
				return nil, fmt.Sprintf("the unit %q is not in the list of common units", code), nil
			}
		}
		return concept{code: code}, "", nil
	}

	canonical, err := p.canonical(ctx, code)
	if err != nil {
		return nil, fmt.Sprintf("unable to determine the canonical units of %q: %v", code, err), nil
	}
	if canonical != f.Criterion {
		return nil, fmt.Sprintf("the unit %q has the canonical units %q, not %q as required by the filter",
			code, canonical, f.Criterion), nil
	}
	return concept{code: code}, "", nil
}

// FilterCheck implements terminology.Provider.
func (p *Provider) FilterCheck(ctx context.Context, f *terminology.Filter, c terminology.Concept) (bool, string, error) {
	code, err := p.conceptCode(c)
	if err != nil {
		return false, "", err
	}
	found, msg, err := p.FilterLocate(ctx, f, code)
	if err != nil {
		return false, "", err
	}
	return found != nil, msg, nil
}

// FilterSize implements terminology.Provider.
func (p *Provider) FilterSize(f *terminology.Filter) (int, error) {
	return f.Size()
}

// ExecuteFilters implements terminology.Provider. Combination semantics
// across filters are layered by the caller; the provider only hands back
// its cursors.
func (p *Provider) ExecuteFilters(ctx context.Context, fc *terminology.FilterContext) ([]*terminology.Filter, error) {
	return fc.Filters(), nil
}

// FiltersNotClosed implements terminology.Provider. No UCUM filter can be
// proven to enumerate its complete result space.
func (p *Provider) FiltersNotClosed(fc *terminology.FilterContext) bool {
	return true
}

// canonical returns the canonical form of code, memoized in the cache
// shared across the factory's providers.
func (p *Provider) canonical(ctx context.Context, code string) (string, error) {
	if canonical, ok := p.canon.Get(code); ok {
		p.metrics.RecordCanonicalLookup(true)
		return canonical, nil
	}
	p.metrics.RecordCanonicalLookup(false)
	canonical, err := p.engine.CanonicalUnits(ctx, code)
	if err != nil {
		return "", err
	}
	p.canon.Set(code, canonical)
	return canonical, nil
}

// conceptCode unwraps a concept produced by this provider.
func (p *Provider) conceptCode(c terminology.Concept) (string, error) {
	uc, ok := c.(concept)
	if !ok {
		return "", fmt.Errorf("concept %T for %s: %w", c, SystemURI, terminology.ErrWrongProvider)
	}
	return uc.code, nil
}

// languages returns the operation's language preference set, empty when
// the provider was built without an operation.
func (p *Provider) languages() terminology.Languages {
	if p.op == nil {
		return terminology.Languages{}
	}
	return p.op.Languages
}

// Verify interface compliance
var _ terminology.Provider = (*Provider)(nil)
