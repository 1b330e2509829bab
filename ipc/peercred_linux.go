//go:build linux

// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package ipc

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// PeerCredentials is the identity of the process on the other end of a
// Unix domain socket, used by the daemon to decide whether a connecting
// client is allowed to request a language-mode change (spec.md §6).
type PeerCredentials struct {
	PID int32
	UID uint32
	GID uint32
}

// VerifyPeer reads the kernel-enforced credentials of the process
// connected via conn using SO_PEERCRED, the same mechanism systemd and
// most IPC daemons on Linux rely on instead of trusting a client-supplied
// identity.
func VerifyPeer(conn *net.UnixConn) (PeerCredentials, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return PeerCredentials{}, fmt.Errorf("ipc.VerifyPeer: could not get raw conn: %w", err)
	}

	var cred *unix.Ucred
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		cred, sockErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if err != nil {
		return PeerCredentials{}, fmt.Errorf("ipc.VerifyPeer: control call failed: %w", err)
	}
	if sockErr != nil {
		return PeerCredentials{}, fmt.Errorf("ipc.VerifyPeer: getsockopt(SO_PEERCRED): %w", sockErr)
	}
	return PeerCredentials{PID: cred.Pid, UID: cred.Uid, GID: cred.Gid}, nil
}
