// Package legacy implements the legacy (pre-v14) type resolver: a
// JSON type-dictionary model plus the (chain, spec, pallet, name)
// resolution order it is looked up through.
package legacy

import (
	"encoding/json"

	"github.com/synnergy-network/substrate-codec/typemarker"
)

// typeRange is one `{ "minMax": [min, max|null], "types": {...} }` entry.
type typeRange struct {
	MinSpec uint32
	MaxSpec *uint32 // nil means unbounded
	Types   map[string]json.RawMessage
}

func (r *typeRange) UnmarshalJSON(data []byte) error {
	var wire struct {
		MinMax []json.RawMessage          `json:"minMax"`
		Types  map[string]json.RawMessage `json:"types"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return &ParseError{Detail: err.Error()}
	}
	if len(wire.MinMax) != 2 {
		return &ParseError{Detail: "minMax must have exactly two elements"}
	}
	if err := json.Unmarshal(wire.MinMax[0], &r.MinSpec); err != nil {
		return &ParseError{Detail: err.Error()}
	}
	if string(wire.MinMax[1]) != "null" {
		var max uint32
		if err := json.Unmarshal(wire.MinMax[1], &max); err != nil {
			return &ParseError{Detail: err.Error()}
		}
		r.MaxSpec = &max
	}
	r.Types = wire.Types
	return nil
}

func (r *typeRange) contains(spec uint32) bool {
	if spec < r.MinSpec {
		return false
	}
	return r.MaxSpec == nil || spec <= *r.MaxSpec
}

// Dictionary holds the parsed legacy type-definition documents: per-chain
// spec-version ranges, per-chain flat overrides, and the extrinsic-argument
// namespace. It is read-only once constructed.
type Dictionary struct {
	ranges     map[string][]typeRange
	chainWide  map[string]map[string]json.RawMessage
	extrinsics map[string][]typeRange
}

// NewEmptyResolver returns a Dictionary with no type documents loaded, the
// legacy-regime equivalent of refusing every custom-name lookup. Global
// built-ins and shape-grammar fallback still resolve, since those do not
// depend on any loaded document.
func NewEmptyResolver() *Dictionary {
	return &Dictionary{}
}

// NewDictionary parses the three legacy type-definition documents. Any of
// the three may be nil or empty to skip loading that document.
//
// typesJSON and extrinsicsJSON both have the shape documented in spec.md §6:
// `{ "<chain>": [ { "minMax": [min, max|null], "types": {...} }, ... ] }`.
// chainWideJSON is the flatter `{ "<chain>": { "<Name>": TypeDef, ... } }`,
// applied regardless of spec version (resolution step 2).
func NewDictionary(typesJSON, chainWideJSON, extrinsicsJSON []byte) (*Dictionary, error) {
	d := &Dictionary{}
	var err error
	if len(typesJSON) > 0 {
		if d.ranges, err = parseRangeDoc(typesJSON); err != nil {
			return nil, err
		}
	}
	if len(chainWideJSON) > 0 {
		if err := json.Unmarshal(chainWideJSON, &d.chainWide); err != nil {
			return nil, &ParseError{Detail: err.Error()}
		}
	}
	if len(extrinsicsJSON) > 0 {
		if d.extrinsics, err = parseRangeDoc(extrinsicsJSON); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func parseRangeDoc(raw []byte) (map[string][]typeRange, error) {
	var doc map[string][]typeRange
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Detail: err.Error()}
	}
	return doc, nil
}

// lookupRanged implements resolution step 1: the first chain range whose
// bounds contain spec, consulted for name. A later overlapping range is
// never consulted even if the first range does not define name.
func lookupRanged(doc map[string][]typeRange, chain string, spec uint32, name string) (*rawDef, bool) {
	for _, r := range doc[chain] {
		if !r.contains(spec) {
			continue
		}
		raw, ok := r.Types[name]
		if !ok {
			return nil, false
		}
		def, err := parseRawDef(raw)
		if err != nil {
			return nil, false
		}
		return def, true
	}
	return nil, false
}

func (d *Dictionary) lookupChainWide(chain, name string) (*rawDef, bool) {
	raw, ok := d.chainWide[chain][name]
	if !ok {
		return nil, false
	}
	def, err := parseRawDef(raw)
	if err != nil {
		return nil, false
	}
	return def, true
}

// resolveWith walks the shared resolution order (chain-wide overrides,
// pallet built-ins, global built-ins, shape-grammar fallback) on top of a
// caller-supplied first lookup step, following pure string aliases until a
// composite shape or built-in terminates the chain. Revisiting a name
// within one call is a CyclicTypeError.
func (d *Dictionary) resolveWith(chain string, spec uint32, pallet, name string, first func(cur string) (*rawDef, bool)) (*typemarker.TypeMarker, error) {
	visited := make(map[string]bool)
	var path []string
	cur := name
	for {
		if visited[cur] {
			return nil, &CyclicTypeError{Path: append(path, cur)}
		}
		visited[cur] = true
		path = append(path, cur)

		if raw, ok := first(cur); ok {
			if raw.Alias != nil {
				cur = *raw.Alias
				continue
			}
			return buildMarker(raw)
		}
		if raw, ok := d.lookupChainWide(chain, cur); ok {
			if raw.Alias != nil {
				cur = *raw.Alias
				continue
			}
			return buildMarker(raw)
		}
		if pallet != "" {
			if m, ok := palletBuiltins[pallet][cur]; ok {
				return m, nil
			}
		}
		if m, ok := globalBuiltins[cur]; ok {
			return m, nil
		}
		if m, ok := parseShape(cur); ok {
			return m, nil
		}
		return nil, &TypeNotFoundError{Chain: chain, Spec: spec, Pallet: pallet, Name: cur}
	}
}

// Resolve implements the full (chain, spec, pallet, name) resolution order
// of spec.md §4.3.
func (d *Dictionary) Resolve(chain string, spec uint32, pallet, name string) (*typemarker.TypeMarker, error) {
	return d.resolveWith(chain, spec, pallet, name, func(cur string) (*rawDef, bool) {
		return lookupRanged(d.ranges, chain, spec, cur)
	})
}

// TryFallback exposes resolution steps 2 and 3 for callers that lack a
// pallet context. Step 3 (pallet-scoped built-ins) has no meaning without a
// pallet; the global built-in table stands in for it here, since a global
// built-in is by definition not scoped to any particular pallet.
func (d *Dictionary) TryFallback(chain, name string) (*typemarker.TypeMarker, error) {
	if raw, ok := d.lookupChainWide(chain, name); ok {
		if raw.Alias != nil {
			return resolveTypeName(*raw.Alias), nil
		}
		return buildMarker(raw)
	}
	if m, ok := globalBuiltins[name]; ok {
		return m, nil
	}
	if m, ok := parseShape(name); ok {
		return m, nil
	}
	return nil, &TypeNotFoundError{Chain: chain, Name: name}
}

// GetExtrinsicTy resolves a name in the extrinsic-argument namespace: the
// same (chain, spec) range structure as Resolve, but sourced from a
// separately-scoped document (spec.md §4.3).
func (d *Dictionary) GetExtrinsicTy(chain string, spec uint32, name string) (*typemarker.TypeMarker, error) {
	return d.resolveWith(chain, spec, "", name, func(cur string) (*rawDef, bool) {
		return lookupRanged(d.extrinsics, chain, spec, cur)
	})
}

// MakeResolver adapts Resolve into a typemarker.Resolver closure bound to a
// fixed chain, spec version and pallet, for use with typemarker.Walk.
func (d *Dictionary) MakeResolver(chain string, spec uint32, pallet string) typemarker.Resolver {
	return func(name string) (*typemarker.TypeMarker, error) {
		return d.Resolve(chain, spec, pallet, name)
	}
}
