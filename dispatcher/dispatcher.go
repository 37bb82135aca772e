// Package dispatcher implements the versioned dispatch facade (spec.md §9):
// a per-spec-version registration table that routes a decode request to the
// legacy or current component tree a chain's metadata was registered
// under, so callers never branch on regime themselves.
package dispatcher

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-network/substrate-codec/extrinsic"
	"github.com/synnergy-network/substrate-codec/legacy"
	"github.com/synnergy-network/substrate-codec/metadata"
	"github.com/synnergy-network/substrate-codec/storage"
	"github.com/synnergy-network/substrate-codec/typemarker"
)

var log = logrus.StandardLogger()

// DecodedCall is a best-effort-decoded batch of extrinsics, tagged by the
// regime whose metadata produced it.
type DecodedCall struct {
	Regime     metadata.Regime
	Extrinsics []*extrinsic.DecodedExtrinsic
}

// DecodedStorage is a decoded storage entry, tagged by the regime whose
// metadata produced it.
type DecodedStorage struct {
	Regime metadata.Regime
	Record *storage.Record
}

// registration is the per-spec-version bundle a call is dispatched through.
type registration struct {
	chain      string
	spec       uint32
	meta       *metadata.Metadata
	legacyDict *legacy.Dictionary // non-nil only when meta.Regime == metadata.RegimeLegacy
}

func (r *registration) resolverFactory() metadata.ResolverFactory {
	if r.meta.Regime == metadata.RegimeCurrent {
		resolve := r.meta.Registry.MakeResolver()
		return func(pallet string) typemarker.Resolver { return resolve }
	}
	return func(pallet string) typemarker.Resolver {
		return r.legacyDict.MakeResolver(r.chain, r.spec, pallet)
	}
}

// Dispatcher holds one registration per spec version and routes decode
// requests through it. The zero value is not usable; construct with New.
type Dispatcher struct {
	mu        sync.RWMutex
	byVersion map[uint32]*registration
}

// New returns an empty Dispatcher.
func New() *Dispatcher {
	return &Dispatcher{byVersion: make(map[uint32]*registration)}
}

// RegisterVersion registers meta for specVersion. dict is the legacy type
// dictionary to resolve meta's custom type names through; pass nil (or
// legacy.NewEmptyResolver()) when meta.Regime is RegimeCurrent, or when a
// legacy chain defines no custom types of its own (spec.md's
// "NoLegacyTypes" case). Registering a spec version that already has a
// registration silently replaces it.
func (d *Dispatcher) RegisterVersion(specVersion uint32, chain string, meta *metadata.Metadata, dict *legacy.Dictionary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byVersion[specVersion]; exists {
		log.WithField("spec_version", specVersion).Debug("dispatcher: replacing existing registration")
	}
	if dict == nil {
		dict = legacy.NewEmptyResolver()
	}
	d.byVersion[specVersion] = &registration{chain: chain, spec: specVersion, meta: meta, legacyDict: dict}
}

// HasVersion reports whether specVersion has a registration.
func (d *Dispatcher) HasVersion(specVersion uint32) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byVersion[specVersion]
	return ok
}

func (d *Dispatcher) lookup(specVersion uint32) (*registration, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	reg, ok := d.byVersion[specVersion]
	if !ok {
		return nil, &SpecVersionNotFoundError{SpecVersion: specVersion}
	}
	return reg, nil
}

// DecodeExtrinsics decodes a Vec<UncheckedExtrinsic> blob against the
// metadata registered for specVersion.
func (d *Dispatcher) DecodeExtrinsics(specVersion uint32, raw []byte) (*DecodedCall, error) {
	reg, err := d.lookup(specVersion)
	if err != nil {
		return nil, err
	}
	decoded, err := extrinsic.DecodeExtrinsics(raw, reg.meta, reg.resolverFactory())
	result := &DecodedCall{Regime: reg.meta.Regime, Extrinsics: decoded}
	if err != nil {
		return result, err
	}
	return result, nil
}

// DecodeStorage matches key against the metadata registered for
// specVersion and decodes it and value into a Record. value is nil when no
// value was found on the wire for this key, letting DecodeEntry fall back
// to the matched entry's declared default (spec.md §4.6/§8).
func (d *Dispatcher) DecodeStorage(specVersion uint32, key []byte, value *[]byte) (*DecodedStorage, error) {
	reg, err := d.lookup(specVersion)
	if err != nil {
		return nil, err
	}
	pallet, entry, tail, err := storage.MatchEntry(reg.meta, key)
	if err != nil {
		return nil, err
	}
	resolve := reg.resolverFactory()(pallet.Name)
	rec, err := storage.DecodeEntry(pallet, entry, tail, value, resolve)
	if err != nil {
		return nil, err
	}
	return &DecodedStorage{Regime: reg.meta.Regime, Record: rec}, nil
}
