// caesar - A terminal workbench for Caesar ciphers.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/caesar-tui/internal/cli"
	"github.com/jeranaias/caesar-tui/internal/config"
	"github.com/jeranaias/caesar-tui/internal/service"
	"github.com/jeranaias/caesar-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI arguments
	cmd, args := cli.Parse()

	// Help and version need no service
	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage()
		return cli.ExitSuccess
	case cli.CmdVersion:
		if !args.JSON && !args.Quiet {
			cli.PrintVersion()
			return cli.ExitSuccess
		}
	}

	svc, err := service.New(config.Global())
	if err != nil {
		cli.DisplayError(err, args.JSON)
		return cli.ExitGeneralError
	}
	defer svc.Close()

	if cmd == cli.CmdTUI {
		return runTUI(svc)
	}

	runner := cli.NewRunner(svc)
	if err := runner.Run(cmd, args); err != nil {
		runner.Report(err, args.JSON)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// runTUI starts the workbench.
func runTUI(svc *service.Service) int {
	if !cli.IsTTY() || !cli.IsStdoutTTY() {
		cli.DisplayError(errors.New("the workbench needs a terminal; see 'caesar help' for commands"), false)
		return cli.ExitGeneralError
	}
	if err := app.Run(svc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitGeneralError
	}
	return cli.ExitSuccess
}
