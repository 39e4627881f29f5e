// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package claim

import (
	"context"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
)

var (
	_ Handler = (*NoOpHandler)(nil)
	_ Handler = (HandlerFunc)(nil)
	_ Handler = (*EmitterHandler)(nil)
	_ Handler = (*Ledger)(nil)
)

// AttestedMessage is a cross-chain message the attestation service has
// verified: the signature checks already passed and the emitter fields are
// taken from the verified header, not from the payload.
type AttestedMessage struct {
	EmitterChain   uint16
	EmitterAddress ids.ID
	// BatchID is the nonce of the bridge batch the message arrived in.
	BatchID uint32
	// ContentHash is the digest of the verified message.
	ContentHash ids.ID
	// Envelope is the raw message envelope.
	Envelope []byte
}

// Handler is the server-side logic for attested message delivery.
type Handler interface {
	// HandleAttested is called once per verified cross-chain message.
	HandleAttested(ctx context.Context, msg AttestedMessage) error
}

// NoOpHandler drops all messages
type NoOpHandler struct{}

func (NoOpHandler) HandleAttested(context.Context, AttestedMessage) error {
	return nil
}

// HandlerFunc is a function adapter for Handler
type HandlerFunc func(context.Context, AttestedMessage) error

func (f HandlerFunc) HandleAttested(ctx context.Context, msg AttestedMessage) error {
	return f(ctx, msg)
}

func NewEmitterHandler(
	handler Handler,
	emitters *Registry,
	log log.Logger,
) *EmitterHandler {
	return &EmitterHandler{
		handler:  handler,
		emitters: emitters,
		log:      log,
	}
}

// EmitterHandler drops messages from unregistered emitters
type EmitterHandler struct {
	handler  Handler
	emitters *Registry
	log      log.Logger
}

func (e *EmitterHandler) HandleAttested(ctx context.Context, msg AttestedMessage) error {
	if !e.emitters.IsRegistered(msg.EmitterChain, msg.EmitterAddress) {
		e.log.Debug("dropping message",
			log.Uint16("emitterChain", msg.EmitterChain),
			log.Stringer("emitterAddress", msg.EmitterAddress),
			log.UserString("reason", "unregistered emitter"),
		)
		return ErrInvalidForeignEmitter
	}

	return e.handler.HandleAttested(ctx, msg)
}

// HandleAttested records the message's entitlement, implementing Handler so
// a ledger can sit directly behind an EmitterHandler.
func (l *Ledger) HandleAttested(_ context.Context, msg AttestedMessage) error {
	return l.ReceiveMessage(msg.Envelope, msg.BatchID, msg.ContentHash)
}
