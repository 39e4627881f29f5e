// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/ids"
)

// MaxPayloadLen is the maximum raw payload a Received record can hold. This
// is a storage bound, distinct from and larger than the wire codec's limit;
// both are enforced independently.
const MaxPayloadLen = 1024

var (
	ErrPayloadTooLarge  = errors.New("payload exceeds storage bound")
	ErrDuplicateMessage = errors.New("message already recorded")
)

// Received is the audit record of one accepted cross-chain message. Records
// are immutable once added.
type Received struct {
	// BatchID is the message nonce assigned by the originating bridge batch.
	BatchID uint32
	// ContentHash is the digest of the attested message, unique per message.
	ContentHash ids.ID
	// Payload is the raw UserInfo payload as received.
	Payload []byte
}

// ReceivedStore is an append-only store of Received records keyed by content
// hash. A hash can be recorded at most once.
type ReceivedStore struct {
	lock    sync.RWMutex
	records map[ids.ID]Received
}

func NewReceivedStore() *ReceivedStore {
	return &ReceivedStore{
		records: make(map[ids.ID]Received),
	}
}

// Add records a received message. It fails if the payload exceeds
// MaxPayloadLen or if the content hash has already been recorded.
func (s *ReceivedStore) Add(rec Received) error {
	if len(rec.Payload) > MaxPayloadLen {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, len(rec.Payload), MaxPayloadLen)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.records[rec.ContentHash]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMessage, rec.ContentHash)
	}

	// Copy the payload so later mutation of the caller's slice cannot reach
	// the stored record.
	payload := make([]byte, len(rec.Payload))
	copy(payload, rec.Payload)
	rec.Payload = payload

	s.records[rec.ContentHash] = rec
	return nil
}

// Get returns the record for a content hash, if one was recorded.
func (s *ReceivedStore) Get(contentHash ids.ID) (Received, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	rec, ok := s.records[contentHash]
	if !ok {
		return Received{}, false
	}

	payload := make([]byte, len(rec.Payload))
	copy(payload, rec.Payload)
	rec.Payload = payload
	return rec, true
}

// Len returns the number of recorded messages.
func (s *ReceivedStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.records)
}
