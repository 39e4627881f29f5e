// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/luxfi/ids"
)

func TestMarshalAlive(t *testing.T) {
	programID := ids.GenerateTestID()

	data, err := Marshal(&Alive{ProgramID: programID})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	if len(data) != 1+ids.IDLen {
		t.Errorf("expected length %d, got %d", 1+ids.IDLen, len(data))
	}
	if data[0] != payloadAlive {
		t.Errorf("expected tag %#02x, got %#02x", payloadAlive, data[0])
	}
	if !bytes.Equal(data[1:], programID[:]) {
		t.Error("program id mismatch")
	}

	msg, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	alive, ok := msg.(*Alive)
	if !ok {
		t.Fatalf("expected *Alive, got %T", msg)
	}
	if alive.ProgramID != programID {
		t.Error("round-trip program id mismatch")
	}
}

func TestMarshalUserInfo(t *testing.T) {
	payload := []byte("All your base are belong to us")

	data, err := Marshal(&UserInfo{Payload: payload})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	if len(data) != 1+2+len(payload) {
		t.Errorf("expected length %d, got %d", 1+2+len(payload), len(data))
	}
	if data[0] != payloadUserInfo {
		t.Errorf("expected tag %#02x, got %#02x", payloadUserInfo, data[0])
	}
	if got := binary.BigEndian.Uint16(data[1:3]); int(got) != len(payload) {
		t.Errorf("expected declared length %d, got %d", len(payload), got)
	}
	if !bytes.Equal(data[3:], payload) {
		t.Error("payload mismatch")
	}

	msg, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	userInfo, ok := msg.(*UserInfo)
	if !ok {
		t.Fatalf("expected *UserInfo, got %T", msg)
	}
	if !bytes.Equal(userInfo.Payload, payload) {
		t.Error("round-trip payload mismatch")
	}
}

func TestUserInfoSizeBoundary(t *testing.T) {
	atLimit := make([]byte, MaxUserInfoLen)
	if _, err := Marshal(&UserInfo{Payload: atLimit}); err != nil {
		t.Errorf("payload of %d bytes should marshal: %v", MaxUserInfoLen, err)
	}

	overLimit := make([]byte, MaxUserInfoLen+1)
	if _, err := Marshal(&UserInfo{Payload: overLimit}); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}

	// Craft the oversized envelope by hand and make sure decoding rejects it
	// before reading the payload.
	data := make([]byte, 1+2+len(overLimit))
	data[0] = payloadUserInfo
	binary.BigEndian.PutUint16(data[1:3], uint16(len(overLimit)))
	copy(data[3:], overLimit)

	if _, err := Unmarshal(data); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestUnmarshalInvalidTag(t *testing.T) {
	for _, tag := range []byte{0x02, 0x7f, 0xff} {
		data := append([]byte{tag}, make([]byte, 32)...)
		if _, err := Unmarshal(data); !errors.Is(err, ErrInvalidTag) {
			t.Errorf("tag %#02x: expected ErrInvalidTag, got %v", tag, err)
		}
	}

	if _, err := Unmarshal(nil); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("empty buffer: expected ErrInvalidTag, got %v", err)
	}
}

func TestUnmarshalShortBuffer(t *testing.T) {
	// Alive with a truncated program id.
	if _, err := Unmarshal(append([]byte{payloadAlive}, make([]byte, 16)...)); err == nil {
		t.Error("truncated Alive should not unmarshal")
	}

	// UserInfo with a truncated length prefix.
	if _, err := Unmarshal([]byte{payloadUserInfo, 0x00}); err == nil {
		t.Error("truncated length prefix should not unmarshal")
	}

	// UserInfo declaring more bytes than the buffer holds.
	if _, err := Unmarshal([]byte{payloadUserInfo, 0x00, 0x05, 0x01, 0x02}); err == nil {
		t.Error("short payload should not unmarshal")
	}
}

func TestUnmarshalTrailingBytes(t *testing.T) {
	payload := []byte{0xaa, 0xbb}
	data, err := Marshal(&UserInfo{Payload: payload})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	// Bytes beyond the declared envelope belong to the caller, not the
	// payload.
	msg, err := Unmarshal(append(data, 0xde, 0xad))
	if err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	userInfo, ok := msg.(*UserInfo)
	if !ok {
		t.Fatalf("expected *UserInfo, got %T", msg)
	}
	if !bytes.Equal(userInfo.Payload, payload) {
		t.Errorf("trailing bytes leaked into payload: %x", userInfo.Payload)
	}
}
