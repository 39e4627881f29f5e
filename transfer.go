// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package claim

import (
	"context"

	"github.com/luxfi/ids"
)

var _ Poster = (*NoOpPoster)(nil)

// Transferer moves token balances between accounts. The ledger treats a
// transfer as atomic: either the funds move or the call errors and nothing
// moved.
type Transferer interface {
	// Transfer moves amount tokens from one account to another.
	Transfer(ctx context.Context, from ids.ID, to ids.ID, amount uint64) error
}

// Poster hands an outbound message to the bridge for attestation and
// delivery to the foreign chain.
type Poster interface {
	Post(ctx context.Context, msg []byte) error
}

// NoOpPoster drops all outbound messages
type NoOpPoster struct{}

func (NoOpPoster) Post(context.Context, []byte) error {
	return nil
}
