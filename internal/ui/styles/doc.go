// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling of the caesar workbench.
//
// Two palettes exist, dark and light, matching the ui.theme setting. A Theme
// is built from one palette and rebuilt when the user toggles:
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	theme.SetSize(width, height)
//	if theme.GetLayoutMode() == styles.LayoutWide {
//	    // input and log side by side
//	}
//
// Status text always carries an ASCII indicator ([OK], [X], [!], [i]) so it
// reads without color.
package styles
