package ucum

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gofhir/fhir/r4"
	"github.com/gofhir/terminology"
	"github.com/gofhir/terminology/cache"
	"github.com/gofhir/terminology/pkg/logger"
)

// Option configures a Factory.
type Option func(*options)

type options struct {
	commonUnits        []CommonUnit
	commonUnitsID      string
	canonicalCacheSize int
	metrics            *terminology.Metrics
}

// WithCommonUnits supplies the common-units enumeration the factory binds
// its providers to. id identifies the enumeration in factory cache keys.
func WithCommonUnits(units []CommonUnit) Option {
	return func(o *options) {
		o.commonUnits = units
	}
}

// WithCommonUnitsValueSet supplies the common-units enumeration as an R4
// ValueSet; codes are extracted the same way WithCommonUnits expects them
// and the enumeration identity is taken from the resource.
func WithCommonUnitsValueSet(vs *r4.ValueSet) Option {
	return func(o *options) {
		units, err := CommonUnitsFromValueSet(vs)
		if err != nil {
			logger.Warn("ignoring common units valueset: %v", err)
			return
		}
		o.commonUnits = units
		o.commonUnitsID = EnumerationID(vs)
	}
}

// WithCommonUnitsID sets the enumeration identity used in factory cache
// keys, for enumerations not sourced from a ValueSet.
func WithCommonUnitsID(id string) Option {
	return func(o *options) {
		o.commonUnitsID = id
	}
}

// WithCanonicalCacheSize sets the capacity of the canonical-form
// memoization cache shared by all providers the factory builds.
func WithCanonicalCacheSize(n int) Option {
	return func(o *options) {
		o.canonicalCacheSize = n
	}
}

// WithMetrics attaches operation metrics to the factory and every
// provider it builds.
func WithMetrics(m *terminology.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Factory builds UCUM providers bound to one grammar engine and one
// common-units enumeration. The expensive step, validating and
// canonicalizing every common-unit entry, happens once here; Build is
// cheap and safe to call per logical operation and from concurrent
// goroutines.
type Factory struct {
	engine   Service
	version  string
	common   []CommonUnit
	index    map[string][]int // code -> positions in common
	commonID string
	canon    *cache.Cache[string, string]
	metrics  *terminology.Metrics
	useCount atomic.Int64
}

// NewFactory creates a factory over the given grammar engine. The engine
// is queried for its UCUM version, and every configured common-unit entry
// is validated and canonicalized up front.
func NewFactory(ctx context.Context, engine Service, opts ...Option) (*Factory, error) {
	if engine == nil {
		return nil, fmt.Errorf("ucum: engine is nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	version, err := engine.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("ucum: identify engine: %w", err)
	}

	f := &Factory{
		engine:   engine,
		version:  version,
		commonID: o.commonUnitsID,
		canon:    cache.New[string, string](o.canonicalCacheSize),
		metrics:  o.metrics,
	}

	if err := f.processCommonUnits(ctx, o.commonUnits); err != nil {
		return nil, err
	}
	return f, nil
}

// processCommonUnits validates and canonicalizes the candidate entries.
// Entries whose code fails grammar validation are dropped; entries whose
// canonicalization fails are kept without a canonical form, since a common
// unit may be listed for display purposes alone.
func (f *Factory) processCommonUnits(ctx context.Context, candidates []CommonUnit) error {
	f.index = make(map[string][]int, len(candidates))

	for _, cu := range candidates {
		msg, err := f.engine.Validate(ctx, cu.Code)
		if err != nil {
			return fmt.Errorf("ucum: validate common unit %q: %w", cu.Code, err)
		}
		if msg != "" {
			logger.Warn("dropping common unit %q: %s", cu.Code, msg)
			continue
		}

		canonical, err := f.engine.CanonicalUnits(ctx, cu.Code)
		if err != nil {
			logger.Debug("no canonical form for common unit %q: %v", cu.Code, err)
			canonical = ""
		} else {
			f.canon.Set(cu.Code, canonical)
		}

		cu.Canonical = canonical
		f.common = append(f.common, cu)
		f.index[cu.Code] = append(f.index[cu.Code], len(f.common)-1)
	}
	return nil
}

// Build constructs a provider bound to the factory's shared immutable
// common-units enumeration, the operation's language preferences, and the
// given supplements.
func (f *Factory) Build(op *terminology.Operation, supplements []*terminology.Supplement) terminology.Provider {
	f.useCount.Add(1)
	return &Provider{
		engine:      f.engine,
		version:     f.version,
		common:      f.common,
		index:       f.index,
		canon:       f.canon,
		metrics:     f.metrics,
		op:          op,
		supplements: supplements,
	}
}

// UseCount returns how many providers this factory has built.
func (f *Factory) UseCount() int64 {
	return f.useCount.Load()
}

// Key returns the factory-set cache key for this factory.
func (f *Factory) Key() string {
	return terminology.FactoryKey(SystemURI, f.version, f.commonID)
}

// Verify interface compliance
var _ terminology.Factory = (*Factory)(nil)
