// Command mia is a terminal assistant for everyday file and folder chores:
// listing, tree views, name search, sorting loose files into category
// folders, and small create/rename helpers.
//
// Run `mia --help` for the command list. Configuration is read from
// ~/.config/mia/config.toml (or ./mia.toml) when present; `mia config init`
// writes a commented sample.
package main
