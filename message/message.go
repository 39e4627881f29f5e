// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package message implements the wire format for cross-chain claim messages.
package message

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/luxfi/ids"
)

// Payload tags. The first byte of every marshalled message is one of these.
const (
	payloadAlive    byte = 0x00
	payloadUserInfo byte = 0x01
)

// MaxUserInfoLen is the maximum payload length a UserInfo message may carry
// on the wire.
const MaxUserInfoLen = 512

var (
	ErrInvalidTag      = errors.New("invalid payload tag")
	ErrPayloadTooLarge = errors.New("payload too large")

	_ Message = (*Alive)(nil)
	_ Message = (*UserInfo)(nil)
)

// Message is a cross-chain claim message. Exactly two variants exist: Alive
// and UserInfo. The on-wire tag byte uniquely determines the variant.
type Message interface {
	message()
}

// Alive is the liveness handshake variant, emitted when the ledger is
// initialized.
type Alive struct {
	ProgramID ids.ID
}

func (*Alive) message() {}

// UserInfo carries an opaque entitlement payload.
type UserInfo struct {
	Payload []byte
}

func (*UserInfo) message() {}

// Marshal serializes a message to bytes.
//
// Format: tag(1) followed by the variant fields. Alive is the 32-byte program
// ID. UserInfo is a big-endian uint16 length followed by the payload, which
// must not exceed MaxUserInfoLen.
func Marshal(msg Message) ([]byte, error) {
	switch msg := msg.(type) {
	case *Alive:
		buf := make([]byte, 1+ids.IDLen)
		buf[0] = payloadAlive
		copy(buf[1:], msg.ProgramID[:])
		return buf, nil
	case *UserInfo:
		if len(msg.Payload) > MaxUserInfoLen {
			return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, len(msg.Payload), MaxUserInfoLen)
		}
		buf := make([]byte, 1+2+len(msg.Payload))
		buf[0] = payloadUserInfo
		binary.BigEndian.PutUint16(buf[1:3], uint16(len(msg.Payload)))
		copy(buf[3:], msg.Payload)
		return buf, nil
	default:
		return nil, fmt.Errorf("%w: unknown message type %T", ErrInvalidTag, msg)
	}
}

// Unmarshal parses a message from bytes. It consumes exactly the bytes the
// envelope declares; trailing bytes beyond the envelope are ignored.
func Unmarshal(bytes []byte) (Message, error) {
	if len(bytes) < 1 {
		return nil, fmt.Errorf("%w: empty buffer", ErrInvalidTag)
	}

	switch tag := bytes[0]; tag {
	case payloadAlive:
		if len(bytes) < 1+ids.IDLen {
			return nil, fmt.Errorf("data too short for program id: %d", len(bytes))
		}
		programID, err := ids.ToID(bytes[1 : 1+ids.IDLen])
		if err != nil {
			return nil, err
		}
		return &Alive{ProgramID: programID}, nil
	case payloadUserInfo:
		if len(bytes) < 3 {
			return nil, fmt.Errorf("data too short for payload length: %d", len(bytes))
		}
		length := int(binary.BigEndian.Uint16(bytes[1:3]))
		if length > MaxUserInfoLen {
			return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, length, MaxUserInfoLen)
		}
		if len(bytes) < 3+length {
			return nil, fmt.Errorf("data too short for payload: %d < %d", len(bytes), 3+length)
		}
		payload := make([]byte, length)
		copy(payload, bytes[3:3+length])
		return &UserInfo{Payload: payload}, nil
	default:
		return nil, fmt.Errorf("%w: %#02x", ErrInvalidTag, tag)
	}
}
