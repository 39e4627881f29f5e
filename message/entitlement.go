// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/luxfi/ids"
)

// EntitlementLen is the exact length of an entitlement payload:
// recipient(32) + amount(8).
const EntitlementLen = ids.IDLen + 8

var ErrMalformedEntitlement = errors.New("malformed entitlement")

// Entitlement is the record carried inside a UserInfo payload: a recipient
// identity and the amount it is owed.
type Entitlement struct {
	Recipient ids.ID
	Amount    uint64
}

// ParseEntitlement decodes an entitlement from a payload. The payload must be
// exactly EntitlementLen bytes; anything else fails rather than truncates.
// A zero amount is structurally valid here. It is rejected at claim time.
func ParseEntitlement(payload []byte) (Entitlement, error) {
	if len(payload) != EntitlementLen {
		return Entitlement{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedEntitlement, EntitlementLen, len(payload))
	}

	recipient, err := ids.ToID(payload[:ids.IDLen])
	if err != nil {
		return Entitlement{}, err
	}
	return Entitlement{
		Recipient: recipient,
		Amount:    binary.LittleEndian.Uint64(payload[ids.IDLen:]),
	}, nil
}

// Bytes encodes the entitlement into the payload layout ParseEntitlement
// reads: recipient verbatim, then the amount as a little-endian uint64.
func (e Entitlement) Bytes() []byte {
	buf := make([]byte, EntitlementLen)
	copy(buf, e.Recipient[:])
	binary.LittleEndian.PutUint64(buf[ids.IDLen:], e.Amount)
	return buf
}
