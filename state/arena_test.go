// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"sync"
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestArenaUpdateAndGet(t *testing.T) {
	require := require.New(t)

	arena := NewArena()
	recipient := ids.GenerateTestID()

	_, ok := arena.Get(recipient)
	require.False(ok)

	require.NoError(arena.Update(recipient, func(rec *Entitlement) error {
		rec.Recipient = recipient
		rec.Amount = 100
		return nil
	}))

	rec, ok := arena.Get(recipient)
	require.True(ok)
	require.Equal(recipient, rec.Recipient)
	require.Equal(uint64(100), rec.Amount)
	require.Equal(1, arena.Len())
}

func TestArenaRollbackOnError(t *testing.T) {
	require := require.New(t)

	arena := NewArena()
	recipient := ids.GenerateTestID()

	require.NoError(arena.Update(recipient, func(rec *Entitlement) error {
		rec.Recipient = recipient
		rec.Amount = 100
		return nil
	}))

	errBoom := errors.New("boom")
	err := arena.Update(recipient, func(rec *Entitlement) error {
		rec.Amount = 0
		return errBoom
	})
	require.ErrorIs(err, errBoom)

	// The failed update must leave the record untouched.
	rec, ok := arena.Get(recipient)
	require.True(ok)
	require.Equal(uint64(100), rec.Amount)
}

func TestArenaConcurrentDisjointRecipients(t *testing.T) {
	require := require.New(t)

	arena := NewArena()
	recipients := make([]ids.ID, 32)
	for i := range recipients {
		recipients[i] = ids.GenerateTestID()
	}

	var wg sync.WaitGroup
	for _, recipient := range recipients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = arena.Update(recipient, func(rec *Entitlement) error {
					rec.Recipient = recipient
					rec.Amount++
					return nil
				})
			}
		}()
	}
	wg.Wait()

	for _, recipient := range recipients {
		rec, ok := arena.Get(recipient)
		require.True(ok)
		require.Equal(uint64(100), rec.Amount)
	}
}
