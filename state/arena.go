// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state holds the claim ledger's storage records: per-recipient
// entitlements and the append-only received-message audit log.
package state

import (
	"sync"

	"github.com/luxfi/ids"
)

// Entitlement is a recipient's pending claimable amount. An amount of zero
// means no entitlement is pending; a claimed record and a never-issued record
// are indistinguishable.
type Entitlement struct {
	Recipient ids.ID
	Amount    uint64
}

// record wraps an entitlement with its own lock so that updates to different
// recipients never contend.
type record struct {
	lock sync.Mutex
	ent  Entitlement
}

// Arena stores one independently locked entitlement record per recipient.
type Arena struct {
	lock    sync.RWMutex
	records map[ids.ID]*record
}

func NewArena() *Arena {
	return &Arena{
		records: make(map[ids.ID]*record),
	}
}

func (a *Arena) record(recipient ids.ID) *record {
	a.lock.RLock()
	r, ok := a.records[recipient]
	a.lock.RUnlock()
	if ok {
		return r
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	if r, ok := a.records[recipient]; ok {
		return r
	}
	r = &record{}
	a.records[recipient] = r
	return r
}

// Update runs fn against the recipient's record while holding that record's
// lock. If fn returns an error the record is restored to its prior value, so
// a failed update leaves no partial state. Updates to the same recipient are
// serialized; updates to different recipients proceed concurrently.
func (a *Arena) Update(recipient ids.ID, fn func(*Entitlement) error) error {
	r := a.record(recipient)

	r.lock.Lock()
	defer r.lock.Unlock()

	prior := r.ent
	if err := fn(&r.ent); err != nil {
		r.ent = prior
		return err
	}
	return nil
}

// Get returns a copy of the recipient's record. The second return value is
// false if the recipient has never been seen.
func (a *Arena) Get(recipient ids.ID) (Entitlement, bool) {
	a.lock.RLock()
	r, ok := a.records[recipient]
	a.lock.RUnlock()
	if !ok {
		return Entitlement{}, false
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	return r.ent, true
}

// Len returns the number of records in the arena, including claimed and
// zero-amount records.
func (a *Arena) Len() int {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return len(a.records)
}
