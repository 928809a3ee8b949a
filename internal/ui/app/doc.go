// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app implements the caesar TUI workbench.
//
// The screen has a message editor with key and PIN fields, an output panel
// and the brute-force log. Actions run on control keys so letters always
// reach the focused field:
//
//	C-e encrypt     C-d decrypt     C-b attack (asks for the PIN if tagged)
//	C-y copy        C-l link        C-r QR code of the link
//	C-t theme       C-o last log    F1  help
//
// Attacks run as a tea.Cmd and report back with AttackDoneMsg. When the
// dictionary file is watched, reloads arrive as DictReloadedMsg.
package app
