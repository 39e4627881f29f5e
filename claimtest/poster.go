// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package claimtest

import (
	"context"
	"sync"
	"testing"

	"github.com/luxfi/claim"
)

var _ claim.Poster = (*Poster)(nil)

// Poster is a test implementation of claim.Poster. It records every posted
// message. Set PostF to customize behavior, or leave nil for default success.
// Set CantPost to true to fail on unexpected calls.
type Poster struct {
	T *testing.T

	// Function hook - set to customize behavior
	PostF func(context.Context, []byte) error

	// Fail flag - set to true to fail on unexpected calls
	CantPost bool

	lock   sync.Mutex
	posted [][]byte
}

func (p *Poster) Post(ctx context.Context, msg []byte) error {
	if p.CantPost && p.T != nil {
		p.T.Fatal("unexpected Post")
	}
	if p.PostF != nil {
		if err := p.PostF(ctx, msg); err != nil {
			return err
		}
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	buf := make([]byte, len(msg))
	copy(buf, msg)
	p.posted = append(p.posted, buf)
	return nil
}

// Posted returns the messages posted so far, in order.
func (p *Poster) Posted() [][]byte {
	p.lock.Lock()
	defer p.lock.Unlock()

	out := make([][]byte, len(p.posted))
	copy(out, p.posted)
	return out
}
