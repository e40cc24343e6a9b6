// Package config loads editor settings.
//
// Settings are merged from three layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← WEDIT_LOG_LEVEL, WEDIT_ID_PREFIX, ...
//	├─────────────────────────────┤
//	│  2. Settings File           │  ← wedit.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// A missing settings file is not an error. The merged result is decoded into
// a typed Config and checked by Validate.
//
// # File Format
//
//	[session]
//	id_prefix = "wedit-"
//	spellcheck = true
//
//	[logging]
//	level = "info"
//
//	[dispatcher]
//	verify_after_mutation = false
//	metrics = false
//
// # Sub-packages
//
//   - loader: TOML file and environment variable loading
package config
