// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package claimtest provides test implementations of the claim ledger's
// external collaborators.
package claimtest

import (
	"context"
	"sync"
	"testing"

	"github.com/luxfi/claim"
	"github.com/luxfi/ids"
)

var _ claim.Transferer = (*Transferer)(nil)

// Transfer records one invocation of Transferer.Transfer.
type Transfer struct {
	From   ids.ID
	To     ids.ID
	Amount uint64
}

// Transferer is a test implementation of claim.Transferer. It records every
// successful transfer. Set TransferF to customize behavior, or leave nil for
// default success. Set CantTransfer to true to fail on unexpected calls.
type Transferer struct {
	T *testing.T

	// Function hook - set to customize behavior
	TransferF func(context.Context, ids.ID, ids.ID, uint64) error

	// Fail flag - set to true to fail on unexpected calls
	CantTransfer bool

	lock      sync.Mutex
	transfers []Transfer
}

func (t *Transferer) Transfer(ctx context.Context, from ids.ID, to ids.ID, amount uint64) error {
	if t.CantTransfer && t.T != nil {
		t.T.Fatal("unexpected Transfer")
	}
	if t.TransferF != nil {
		if err := t.TransferF(ctx, from, to, amount); err != nil {
			return err
		}
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	t.transfers = append(t.transfers, Transfer{
		From:   from,
		To:     to,
		Amount: amount,
	})
	return nil
}

// Transfers returns the transfers issued so far, in order.
func (t *Transferer) Transfers() []Transfer {
	t.lock.Lock()
	defer t.lock.Unlock()

	out := make([]Transfer, len(t.transfers))
	copy(out, t.transfers)
	return out
}
