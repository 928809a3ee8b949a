// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// link_cmd.go - shareable link commands.

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/caesar-tui/internal/share"
	"github.com/jeranaias/caesar-tui/internal/util"
)

func (r *Runner) handleLink(args Args) error {
	text, err := r.inputText(args, "text", `caesar link "hello world" -k 5 --pin 1234`)
	if err != nil {
		return err
	}
	key, err := r.key(args)
	if err != nil {
		return err
	}

	pin := args.PIN
	if !args.PINSet && !args.JSON {
		entered, ok, err := r.promptPIN("PIN to secure the link: ")
		if err != nil {
			return err
		}
		if ok {
			pin = entered
		}
	}

	link, err := r.svc.Link(text, key, pin, args.Base)
	if err != nil {
		return err
	}

	data := LinkData{URL: link, Key: key}

	if args.QRFile != "" {
		png, err := r.svc.QRCode(link)
		if err != nil {
			return NewCommandError("link", "qr", "could not render QR code", err)
		}
		if err := util.AtomicWriteFile(args.QRFile, png, 0644); err != nil {
			return NewCommandError("link", "qr", "could not write "+args.QRFile, err)
		}
		data.QRFile = args.QRFile
	}

	var qrText string
	if args.QRTerm {
		qrText, err = r.svc.QRTerminal(link)
		if err != nil {
			return NewCommandError("link", "qr", "could not render QR code", err)
		}
	}

	data.Copied = r.copyOut(args, link)

	switch {
	case args.JSON:
		return r.printJSON("link", data)
	case args.Quiet:
		fmt.Fprintln(r.Stdout, link)
		return nil
	}

	r.field("Link:", CipherStyle.Render(link))
	if data.QRFile != "" {
		r.field("QR code:", data.QRFile)
	}
	if qrText != "" {
		fmt.Fprintln(r.Stdout)
		fmt.Fprint(r.Stdout, qrText)
	}
	return nil
}

func (r *Runner) handleOpen(args Args) error {
	link, err := r.inputText(args, "link", `caesar open "receiver.html#c=...&k=5&h=..." --pin 1234`)
	if err != nil {
		return err
	}
	// Reject malformed links before asking for a PIN.
	if _, err := share.ParseLink(link); err != nil {
		return err
	}

	pin := args.PIN
	if !args.PINSet && !args.JSON {
		entered, ok, err := r.promptPIN("Enter PIN: ")
		if err != nil {
			return err
		}
		if ok {
			pin = entered
		}
	}

	if strings.TrimSpace(pin) == "" {
		return share.ErrMissingPIN
	}

	msg, err := r.svc.OpenLink(link, pin)
	if err != nil {
		return err
	}

	data := OpenData{Message: msg}
	data.Copied = r.copyOut(args, msg)

	switch {
	case args.JSON:
		return r.printJSON("open", data)
	case args.Quiet:
		fmt.Fprintln(r.Stdout, msg)
		return nil
	}
	r.field("Message:", CipherStyle.Render(msg))
	return nil
}
