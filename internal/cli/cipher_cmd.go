// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cipher_cmd.go - encrypt and decrypt commands.

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/caesar-tui/internal/pintag"
)

func (r *Runner) handleEncrypt(args Args) error {
	text, err := r.inputText(args, "text", `caesar encrypt "hello world" -k 5`)
	if err != nil {
		return err
	}
	key, err := r.key(args)
	if err != nil {
		return err
	}

	out, err := r.svc.Encrypt(text, key, args.PIN)
	if err != nil {
		return err
	}
	tagged := strings.TrimSpace(args.PIN) != ""
	return r.printCipher("encrypt", args, CipherData{
		Input:  text,
		Output: out,
		Key:    key,
		Tagged: tagged,
	})
}

func (r *Runner) handleDecrypt(args Args) error {
	text, err := r.inputText(args, "text", `caesar decrypt "mjqqt btwqi" -k 5`)
	if err != nil {
		return err
	}
	key, err := r.key(args)
	if err != nil {
		return err
	}

	out, err := r.svc.Decrypt(text, key)
	if err != nil {
		return err
	}
	return r.printCipher("decrypt", args, CipherData{
		Input:  text,
		Output: out,
		Key:    key,
		Tagged: pintag.Extract(text).HasTag,
	})
}

func (r *Runner) printCipher(command string, args Args, data CipherData) error {
	data.Copied = r.copyOut(args, data.Output)

	switch {
	case args.JSON:
		return r.printJSON(command, data)
	case args.Quiet:
		fmt.Fprintln(r.Stdout, data.Output)
		return nil
	}

	r.field("Key:", data.Key)
	if data.Tagged {
		if command == "encrypt" {
			r.field("PIN tag:", "added")
		} else {
			r.field("PIN tag:", "stripped (not checked)")
		}
	}
	r.field("Output:", CipherStyle.Render(data.Output))
	return nil
}
