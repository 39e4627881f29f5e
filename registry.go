// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package claim

import (
	"sync"

	"github.com/luxfi/ids"
)

// Registry maintains the allow-list of foreign emitters: the
// (chain id, contract address) pairs permitted to originate claim messages.
type Registry struct {
	localChain uint16

	lock     sync.RWMutex
	emitters map[uint16]ids.ID
}

// NewRegistry returns an empty registry. localChain is this chain's reserved
// id, which can never be registered as foreign.
func NewRegistry(localChain uint16) *Registry {
	return &Registry{
		localChain: localChain,
		emitters:   make(map[uint16]ids.ID),
	}
}

// Register stores an emitter for a chain, overwriting any previous
// registration for that chain. A foreign emitter cannot use chain id zero,
// cannot share the local chain's id, and cannot use the zero address.
func (r *Registry) Register(chain uint16, address ids.ID) error {
	if chain == 0 || chain == r.localChain || address == ids.Empty {
		return ErrInvalidForeignEmitter
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	r.emitters[chain] = address
	return nil
}

// IsRegistered returns whether the exact (chain, address) pair is on the
// allow-list.
func (r *Registry) IsRegistered(chain uint16, address ids.ID) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()

	registered, ok := r.emitters[chain]
	return ok && registered == address
}

// Emitter returns the registered address for a chain, if any.
func (r *Registry) Emitter(chain uint16) (ids.ID, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	address, ok := r.emitters[chain]
	return address, ok
}

// Chains returns the chain ids with a registered emitter, in no particular
// order.
func (r *Registry) Chains() []uint16 {
	r.lock.RLock()
	defer r.lock.RUnlock()

	chains := make([]uint16, 0, len(r.emitters))
	for chain := range r.emitters {
		chains = append(chains, chain)
	}
	return chains
}
