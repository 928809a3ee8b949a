// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// crack_cmd.go - brute-force key recovery command.

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/caesar-tui/internal/recovery"
	"github.com/jeranaias/caesar-tui/internal/service"
)

const pinPrompt = "This message is PIN protected. Enter PIN (empty to cancel): "

func (r *Runner) handleCrack(args Args) error {
	text, err := r.inputText(args, "ciphertext", `caesar crack "mjqqt btwqi"`)
	if err != nil {
		return err
	}

	pin, err := r.crackPIN(args, text)
	if err != nil {
		return err
	}

	report, err := r.svc.Crack(text, pin, service.CrackOptions{Save: !args.NoSave})
	if err != nil {
		if report == nil {
			return err
		}
		// The search finished but the log could not be written.
		r.warnf("%v", err)
	}
	res := report.Result

	if res.Outcome == recovery.OutcomeCancelled {
		if args.JSON {
			return r.printJSON("crack", CrackData{RunID: report.RunID, Outcome: res.Outcome.String()})
		}
		if !args.Quiet {
			fmt.Fprintln(r.Stderr, WarningStyle.Render("Cancelled: no PIN entered."))
		}
		return nil
	}

	data := CrackData{
		RunID:       report.RunID,
		Outcome:     res.Outcome.String(),
		Key:         res.Key,
		SourceToken: res.SourceToken,
		MatchedWord: res.MatchedWord,
		Plaintext:   res.Plaintext,
		Tokens:      len(res.Tokens),
		Attempts:    len(res.Attempts),
		PINVerified: res.PINVerified,
	}
	if !args.NoSave && err == nil {
		data.LogPath = r.svc.LogStore().Path()
	}
	if res.Found() {
		data.Copied = r.copyOut(args, res.Plaintext)
	}

	var notFound error
	if !res.Found() {
		notFound = NewNotFoundError("key", fmt.Sprintf("no dictionary word in the first %d words", len(res.Tokens)))
	}

	switch {
	case args.JSON:
		if err := r.printJSON("crack", data); err != nil {
			return err
		}
		if notFound != nil {
			return &reportedError{err: notFound}
		}
		return nil
	case args.Quiet:
		if res.Found() {
			fmt.Fprintln(r.Stdout, res.Plaintext)
		}
		return notFound
	}

	r.printCrack(data)
	return notFound
}

// crackPIN decides the PIN argument for a crack. Only tagged input is ever
// prompted for.
func (r *Runner) crackPIN(args Args, text string) (recovery.PIN, error) {
	if !r.svc.NeedsPIN(text) {
		return recovery.NoPIN, nil
	}
	if args.PINSet {
		return recovery.WithPIN(strings.TrimSpace(args.PIN)), nil
	}
	if args.JSON {
		return recovery.NoPIN, nil
	}

	pin, ok, err := r.promptPIN(pinPrompt)
	if err != nil {
		return recovery.NoPIN, err
	}
	if !ok {
		return recovery.NoPIN, nil
	}
	return recovery.WithPIN(pin), nil
}

func (r *Runner) printCrack(data CrackData) {
	r.title("Key recovery " + RenderStatus(data.Outcome))
	if data.PINVerified {
		r.field("PIN:", SuccessStyle.Render("verified"))
	}
	r.field("Words tried:", fmt.Sprintf("%d", data.Tokens))
	r.field("Attempts:", fmt.Sprintf("%d", data.Attempts))

	if data.Outcome == recovery.OutcomeRecovered.String() {
		r.field("Key:", CipherStyle.Render(fmt.Sprintf("%d", data.Key)))
		r.field("Matched word:", fmt.Sprintf("%s (from %q)", data.MatchedWord, data.SourceToken))
		r.field("Plaintext:", CipherStyle.Render(data.Plaintext))
	} else {
		fmt.Fprintln(r.Stdout, ErrorStyle.Render(r.wrap("No dictionary word found. The key could not be recovered.")))
	}

	if data.LogPath != "" {
		fmt.Fprintln(r.Stdout, DimStyle.Render(r.wrap("Log saved to "+shortPath(data.LogPath)+" (view with: caesar log)")))
	}
}
