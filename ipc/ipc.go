// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package ipc defines the wire contract daemon frontends use to talk to
// a running kime daemon over a Unix domain socket (spec.md §6): the
// ClientHello handshake and a length-prefixed binary framing for
// everything that follows. It implements encoding/decoding only; the
// daemon's accept loop and dispatch are out of scope (spec.md
// Non-goals).
package ipc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ClientKind identifies which frontend is on the other end of the
// socket, the first thing a client declares after connecting.
type ClientKind byte

const (
	ClientEngine ClientKind = iota
	ClientIndicator
	ClientWindow
)

func (k ClientKind) String() string {
	switch k {
	case ClientEngine:
		return "engine"
	case ClientIndicator:
		return "indicator"
	case ClientWindow:
		return "window"
	default:
		return "unknown"
	}
}

// ClientHello is the first message a client sends after connecting.
type ClientHello struct {
	Kind ClientKind
}

// MessageType tags the payload of a framed message.
type MessageType byte

const (
	MsgHello MessageType = iota
	MsgPreedit
	MsgCommit
	MsgLanguageChanged
	// MsgSpawnPreeditWindow and MsgRemovePreeditWindow are forwarded by the
	// daemon to the ClientWindow client: a frontend that cannot draw its
	// preedit text inline (e.g. an off-the-spot XIM style) asks the
	// separate floating preedit-window process to show or hide itself.
	MsgSpawnPreeditWindow
	MsgRemovePreeditWindow
)

// maxPayload bounds a single frame's payload, guarding a corrupt or
// adversarial length prefix from driving an unbounded allocation.
const maxPayload = 1 << 20

// WriteFrame writes a length-prefixed frame: a little-endian uint32
// byte count (tag + payload), the tag byte, then payload.
func WriteFrame(w io.Writer, msgType MessageType, payload []byte) error {
	if len(payload) > maxPayload-1 {
		return fmt.Errorf("ipc.WriteFrame: payload too large: %d bytes", len(payload))
	}
	header := make([]byte, 4)
	binary.LittleEndian.PutUint32(header, uint32(len(payload)+1))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("ipc.WriteFrame: could not write header: %w", err)
	}
	frame := make([]byte, 1+len(payload))
	frame[0] = byte(msgType)
	copy(frame[1:], payload)
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("ipc.WriteFrame: could not write frame: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed frame written by WriteFrame.
func ReadFrame(r io.Reader) (MessageType, []byte, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, fmt.Errorf("ipc.ReadFrame: could not read header: %w", err)
	}
	length := binary.LittleEndian.Uint32(header)
	if length == 0 || length > maxPayload {
		return 0, nil, fmt.Errorf("ipc.ReadFrame: invalid frame length %d", length)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, nil, fmt.Errorf("ipc.ReadFrame: could not read body: %w", err)
	}
	return MessageType(body[0]), body[1:], nil
}

// EncodeClientHello serializes a ClientHello to a single-byte payload.
func EncodeClientHello(hello ClientHello) []byte {
	return []byte{byte(hello.Kind)}
}

// DecodeClientHello parses a ClientHello payload.
func DecodeClientHello(payload []byte) (ClientHello, error) {
	if len(payload) != 1 {
		return ClientHello{}, fmt.Errorf("ipc.DecodeClientHello: expected 1 byte, got %d", len(payload))
	}
	kind := ClientKind(payload[0])
	if kind != ClientEngine && kind != ClientIndicator && kind != ClientWindow {
		return ClientHello{}, fmt.Errorf("ipc.DecodeClientHello: unknown client kind %d", payload[0])
	}
	return ClientHello{Kind: kind}, nil
}

// WriteClientHello writes a framed ClientHello handshake.
func WriteClientHello(w io.Writer, hello ClientHello) error {
	return WriteFrame(w, MsgHello, EncodeClientHello(hello))
}

// EncodePreedit serializes a preedit-update notification: the current
// preedit string, UTF-8 encoded.
func EncodePreedit(preedit string) []byte { return []byte(preedit) }

// DecodePreedit is the inverse of EncodePreedit.
func DecodePreedit(payload []byte) string { return string(payload) }

// EncodeCommit serializes a commit notification the same way.
func EncodeCommit(commit string) []byte { return []byte(commit) }

// DecodeCommit is the inverse of EncodeCommit.
func DecodeCommit(payload []byte) string { return string(payload) }

// EncodeLanguageChanged serializes the INPUT_RESULT_LANGUAGE_CHANGED
// notification an indicator subscribes to: true when Hangul mode is
// now active.
func EncodeLanguageChanged(hangul bool) []byte {
	if hangul {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeLanguageChanged is the inverse of EncodeLanguageChanged.
func DecodeLanguageChanged(payload []byte) (bool, error) {
	if len(payload) != 1 {
		return false, fmt.Errorf("ipc.DecodeLanguageChanged: expected 1 byte, got %d", len(payload))
	}
	return payload[0] != 0, nil
}

// EncodeSpawnPreeditWindow serializes a request to show a floating
// preedit window at (x, y) displaying ch: three little-endian uint32s,
// mirroring the original daemon's WindowMessage::SpawnPreeditWindow.
func EncodeSpawnPreeditWindow(x, y uint32, ch rune) []byte {
	payload := make([]byte, 12)
	binary.LittleEndian.PutUint32(payload[0:4], x)
	binary.LittleEndian.PutUint32(payload[4:8], y)
	binary.LittleEndian.PutUint32(payload[8:12], uint32(ch))
	return payload
}

// DecodeSpawnPreeditWindow is the inverse of EncodeSpawnPreeditWindow.
func DecodeSpawnPreeditWindow(payload []byte) (x, y uint32, ch rune, err error) {
	if len(payload) != 12 {
		return 0, 0, 0, fmt.Errorf("ipc.DecodeSpawnPreeditWindow: expected 12 bytes, got %d", len(payload))
	}
	x = binary.LittleEndian.Uint32(payload[0:4])
	y = binary.LittleEndian.Uint32(payload[4:8])
	ch = rune(binary.LittleEndian.Uint32(payload[8:12]))
	return x, y, ch, nil
}

// EncodeRemovePreeditWindow serializes a request to hide the floating
// preedit window. The message carries no payload; the tag alone is the
// instruction (mirroring WindowMessage::RemovePreeditWindow, a unit
// variant).
func EncodeRemovePreeditWindow() []byte { return nil }

// DecodeRemovePreeditWindow validates a MsgRemovePreeditWindow payload,
// which must be empty.
func DecodeRemovePreeditWindow(payload []byte) error {
	if len(payload) != 0 {
		return fmt.Errorf("ipc.DecodeRemovePreeditWindow: expected empty payload, got %d bytes", len(payload))
	}
	return nil
}
