// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for caesar.
//
// # Key Types
//
//   - Command: enumeration of the caesar commands
//   - Args: parsed global and command-specific flags
//   - Runner: executes commands against a service.Service
//   - JSONResponse: envelope for --json output
//
// # Usage
//
//	cmd, args := cli.Parse()
//	runner := cli.NewRunner(svc)
//	if err := runner.Run(cmd, args); err != nil {
//	    runner.Report(err, args.JSON)
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// # Exit Codes
//
//   - 0: success
//   - 1: general error
//   - 2: usage error (missing text, bad key, bad link)
//   - 3: configuration error
//   - 4: wrong or throttled PIN
//   - 7: key not recovered, or nothing saved
//
// The shell command runs the same parser on each line it reads, so every
// command works the same way inside it.
package cli
