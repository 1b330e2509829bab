//go:build !linux

// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package ipc

import (
	"fmt"
	"net"
)

// PeerCredentials is the identity of the process on the other end of a
// Unix domain socket. SO_PEERCRED is Linux-specific; other platforms
// fall back to reporting that peer verification is unsupported rather
// than guessing at an equivalent (kime's daemon is Linux/XIM-only, same
// as the original).
type PeerCredentials struct {
	PID int32
	UID uint32
	GID uint32
}

// VerifyPeer always fails on non-Linux platforms.
func VerifyPeer(conn *net.UnixConn) (PeerCredentials, error) {
	return PeerCredentials{}, fmt.Errorf("ipc.VerifyPeer: peer credential verification is not supported on this platform")
}
