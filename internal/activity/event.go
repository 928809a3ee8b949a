// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package activity keeps an append-only journal of cipher operations with
// secret redaction.
package activity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// EVENT TYPES
// =============================================================================

// Event types written to the journal.
const (
	EventEncrypt      = "ENCRYPT"
	EventDecrypt      = "DECRYPT"
	EventAttackStart  = "ATTACK_START"
	EventAttackResult = "ATTACK_RESULT"
	EventPINRejected  = "PIN_REJECTED"
	EventLink         = "LINK"
	EventTheme        = "THEME"
	EventDictImport   = "DICT_IMPORT"
)

// NewRunID returns a fresh identifier tying related events together.
func NewRunID() string {
	return uuid.New().String()
}

// =============================================================================
// EVENT
// =============================================================================

// Event is a single journal entry.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	RunID     string            `json:"run_id"`
	Key       int               `json:"key,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ToLogLine formats the event as one pipe-separated line. Metadata is
// written as sorted k=v pairs.
func (e *Event) ToLogLine() string {
	timestamp := e.Timestamp.Format("2006-01-02 15:04:05")

	key := ""
	if e.Key > 0 {
		key = fmt.Sprintf("%d", e.Key)
	}

	status := "SUCCESS"
	if !e.Success {
		if e.Error != "" {
			status = fmt.Sprintf("ERROR: %s", e.Error)
		} else {
			status = "FAILURE"
		}
	}

	names := make([]string, 0, len(e.Metadata))
	for k := range e.Metadata {
		names = append(names, k)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names))
	for _, k := range names {
		pairs = append(pairs, k+"="+e.Metadata[k])
	}

	return fmt.Sprintf("%s | %s | %s | %s | %s | %s",
		timestamp,
		e.EventType,
		e.RunID,
		key,
		status,
		strings.Join(pairs, " "),
	)
}

// ToJSON formats the event as JSON.
func (e *Event) ToJSON() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
