// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dictionary

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed words.txt
var defaultWords string

var (
	defaultSet     *WordSet
	defaultSetOnce sync.Once
)

// Default returns the built-in English word list. The set is parsed once
// and shared.
func Default() *WordSet {
	defaultSetOnce.Do(func() {
		ws, err := Load(strings.NewReader(defaultWords))
		if err != nil {
			// The embedded list is never empty.
			panic("dictionary: embedded word list: " + err.Error())
		}
		defaultSet = ws
	})
	return defaultSet
}
