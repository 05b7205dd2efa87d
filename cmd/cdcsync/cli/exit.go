// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "github.com/bureau-foundation/cdcsync/lib/failure"

// Process exit codes. Each error kind from lib/failure has its own
// code so scripts can tell a missing chunk from a corrupt index.
const (
	ExitOK          = 0
	ExitInternal    = 1
	ExitUsage       = 2
	ExitFormat      = 3
	ExitNotFound    = 4
	ExitIO          = 5
	ExitNetwork     = 6
	ExitUnsupported = 7
)

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch failure.KindOf(err) {
	case failure.KindConfig:
		return ExitUsage
	case failure.KindFormat:
		return ExitFormat
	case failure.KindNotFound:
		return ExitNotFound
	case failure.KindIO:
		return ExitIO
	case failure.KindNetwork:
		return ExitNetwork
	case failure.KindUnsupported:
		return ExitUnsupported
	default:
		return ExitInternal
	}
}
