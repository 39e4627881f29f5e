// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package claim

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	safemath "github.com/luxfi/math"

	"github.com/luxfi/claim/message"
	"github.com/luxfi/claim/state"
)

// claimAmountHalflife controls how quickly the average claim size decays.
const claimAmountHalflife = 5 * time.Minute

var ErrNilTransferer = errors.New("nil transferer")

// Config holds the collaborators and identities a Ledger is built from.
type Config struct {
	Log        log.Logger
	Registerer metric.Registerer
	Namespace  string
	// ProgramID identifies this program in outbound Alive messages.
	ProgramID ids.ID
	// Admin is the only identity allowed to register foreign emitters.
	Admin ids.ID
	// LocalChain is this chain's reserved id.
	LocalChain uint16
	Transferer Transferer
	// Poster may be nil if this deployment never sends outbound messages.
	Poster Poster
}

// Ledger is the claim state machine. It records entitlements decoded from
// attested cross-chain messages and pays them out exactly once.
//
// Per recipient the states are: no entitlement, pending (amount > 0), and
// claimed (amount back to 0). A new message for a recipient replaces any
// pending amount; a claim consumes it.
type Ledger struct {
	// Emitters is the foreign emitter allow-list consulted by the external
	// attestation layer before it forwards a message here.
	Emitters *Registry

	log        log.Logger
	metrics    *ledgerMetrics
	programID  ids.ID
	admin      ids.ID
	transferer Transferer
	poster     Poster

	lock        sync.RWMutex
	owner       ids.ID
	initialized bool
	claimAmount safemath.Averager

	entitlements *state.Arena
	received     *state.ReceivedStore
}

// New returns an uninitialized ledger. Initialize must be called before
// claims can be processed.
func New(config Config) (*Ledger, error) {
	if config.Transferer == nil {
		return nil, ErrNilTransferer
	}

	metrics, err := newLedgerMetrics(config.Registerer, config.Namespace)
	if err != nil {
		return nil, err
	}

	logger := config.Log
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	poster := config.Poster
	if poster == nil {
		poster = NoOpPoster{}
	}

	return &Ledger{
		Emitters:     NewRegistry(config.LocalChain),
		log:          logger,
		metrics:      metrics,
		programID:    config.ProgramID,
		admin:        config.Admin,
		transferer:   config.Transferer,
		poster:       poster,
		claimAmount:  safemath.NewAverager(0, claimAmountHalflife, time.Now()),
		entitlements: state.NewArena(),
		received:     state.NewReceivedStore(),
	}, nil
}

// Initialize sets the transfer owner and announces liveness by posting an
// Alive message. It is one-shot: a second call fails and changes nothing.
// If the post fails the ledger stays uninitialized.
func (l *Ledger) Initialize(ctx context.Context, owner ids.ID) error {
	if owner == ids.Empty {
		return ErrInvalidOwner
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if l.initialized {
		return ErrAlreadyInitialized
	}

	raw, err := message.Marshal(&message.Alive{ProgramID: l.programID})
	if err != nil {
		return err
	}
	if err := l.poster.Post(ctx, raw); err != nil {
		return err
	}

	l.owner = owner
	l.initialized = true

	l.log.Info("ledger initialized",
		log.Stringer("owner", owner),
	)
	return nil
}

// RegisterEmitter adds a foreign emitter to the allow-list. Only the
// administrator may call this; re-registering a chain overwrites its address.
func (l *Ledger) RegisterEmitter(caller ids.ID, chain uint16, address ids.ID) error {
	if caller != l.admin {
		return ErrUnauthorized
	}
	if err := l.Emitters.Register(chain, address); err != nil {
		return err
	}

	l.log.Info("registered foreign emitter",
		log.Uint16("chain", chain),
		log.Stringer("address", address),
	)
	return nil
}

// ReceiveMessage records an attested cross-chain message. The envelope must
// decode to a UserInfo variant carrying an entitlement payload; anything else
// is rejected without touching storage. On success the raw payload is stored
// as an audit record and the recipient's entitlement is overwritten with the
// decoded amount.
//
// This is the only writer of a nonzero entitlement amount.
func (l *Ledger) ReceiveMessage(envelopeBytes []byte, batchID uint32, contentHash ids.ID) error {
	msg, err := message.Unmarshal(envelopeBytes)
	if err != nil {
		return l.reject(contentHash, err)
	}

	userInfo, ok := msg.(*message.UserInfo)
	if !ok {
		return l.reject(contentHash, errors.New("not a UserInfo message"))
	}
	if len(userInfo.Payload) > state.MaxPayloadLen {
		return l.reject(contentHash, state.ErrPayloadTooLarge)
	}

	entitlement, err := message.ParseEntitlement(userInfo.Payload)
	if err != nil {
		return l.reject(contentHash, err)
	}

	if err := l.received.Add(state.Received{
		BatchID:     batchID,
		ContentHash: contentHash,
		Payload:     userInfo.Payload,
	}); err != nil {
		return l.reject(contentHash, err)
	}

	_ = l.entitlements.Update(entitlement.Recipient, func(rec *state.Entitlement) error {
		if rec.Amount != 0 {
			l.log.Warn("replacing pending entitlement",
				log.Stringer("recipient", entitlement.Recipient),
				log.Uint64("pending", rec.Amount),
				log.Uint64("amount", entitlement.Amount),
			)
		}
		switch {
		case rec.Amount == 0 && entitlement.Amount != 0:
			l.metrics.Pending.Inc()
		case rec.Amount != 0 && entitlement.Amount == 0:
			l.metrics.Pending.Dec()
		}
		rec.Recipient = entitlement.Recipient
		rec.Amount = entitlement.Amount
		return nil
	})

	l.metrics.Received.Inc()
	l.log.Debug("received entitlement",
		log.Stringer("recipient", entitlement.Recipient),
		log.Uint64("amount", entitlement.Amount),
		log.Uint32("batchID", batchID),
		log.Stringer("contentHash", contentHash),
	)
	return nil
}

func (l *Ledger) reject(contentHash ids.ID, err error) error {
	l.metrics.Rejected.Inc()
	l.log.Debug("dropping message",
		log.Stringer("contentHash", contentHash),
		log.Err(err),
	)
	return ErrInvalidMessage
}

// Claim consumes the recipient's pending entitlement and transfers it. The
// stored amount is zeroed before the transfer is issued so a concurrent
// claim of the same record observes zero; if the transfer fails the zeroing
// is rolled back with it and the entitlement remains claimable.
//
// Returns the transferred amount.
func (l *Ledger) Claim(ctx context.Context, caller ids.ID, recipient ids.ID, authority ids.ID) (uint64, error) {
	l.lock.RLock()
	owner, initialized := l.owner, l.initialized
	l.lock.RUnlock()
	if !initialized {
		return 0, ErrNotInitialized
	}

	var amount uint64
	err := l.entitlements.Update(recipient, func(rec *state.Entitlement) error {
		if rec.Recipient != recipient {
			return ErrInvalidUser
		}
		if rec.Amount == 0 {
			return ErrInvalidAmount
		}
		if authority != owner {
			return ErrInvalidOwner
		}

		// Consume the entitlement before instructing the transfer. The
		// update is rolled back as a unit if the transfer fails.
		amount = rec.Amount
		rec.Amount = 0
		return l.transferer.Transfer(ctx, owner, recipient, amount)
	})
	if err != nil {
		l.metrics.ClaimFailures.Inc()
		l.log.Debug("claim failed",
			log.Stringer("caller", caller),
			log.Stringer("recipient", recipient),
			log.Err(err),
		)
		return 0, err
	}

	l.metrics.Claims.Inc()
	l.metrics.ClaimedTotal.Add(float64(amount))
	l.metrics.Pending.Dec()

	l.lock.Lock()
	l.claimAmount.Observe(float64(amount), time.Now())
	l.lock.Unlock()

	l.log.Info("claimed entitlement",
		log.Stringer("caller", caller),
		log.Stringer("recipient", recipient),
		log.Uint64("amount", amount),
	)
	return amount, nil
}

// SendEntitlement encodes an entitlement for a foreign recipient into a
// UserInfo envelope and posts it to the bridge.
func (l *Ledger) SendEntitlement(ctx context.Context, recipient ids.ID, amount uint64) error {
	entitlement := message.Entitlement{
		Recipient: recipient,
		Amount:    amount,
	}
	raw, err := message.Marshal(&message.UserInfo{Payload: entitlement.Bytes()})
	if err != nil {
		return err
	}
	return l.poster.Post(ctx, raw)
}

// Entitlement returns the pending amount for a recipient. A recipient with
// no record and one whose entitlement was claimed both read as zero.
func (l *Ledger) Entitlement(recipient ids.ID) uint64 {
	rec, ok := l.entitlements.Get(recipient)
	if !ok || rec.Recipient != recipient {
		return 0
	}
	return rec.Amount
}

// Received returns the audit record for an attested message hash.
func (l *Ledger) Received(contentHash ids.ID) (state.Received, bool) {
	return l.received.Get(contentHash)
}

// AverageClaimAmount returns the decaying average of claimed amounts.
func (l *Ledger) AverageClaimAmount() float64 {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.claimAmount.Read()
}
