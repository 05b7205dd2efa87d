// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for cdcsync.
//
// Configuration is loaded from a single file specified by either the
// CDCSYNC_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search: without either, [Resolve] returns [Default].
//
// Files are YAML. Files ending in .json or .jsonc are read as JSON with
// comments and trailing commas allowed. Unknown keys are errors, so a
// misspelled setting is reported rather than silently ignored.
//
// Variable expansion is performed on store.location after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values; command-line flags
// do, in the command layer.
//
// This package depends on no other cdcsync packages.
package config
