// Package config loads, normalizes, and validates mia's TOML configuration.
//
// The lookup order is the --config flag, ~/.config/mia/config.toml, and
// finally ./mia.toml; when none exists the defaults apply. Loaded values are
// normalized (paths expanded, enums lowercased, extensions dotted) and then
// validated so commands can consume them without further checks. Command-line
// flags override individual values for a single invocation.
package config
