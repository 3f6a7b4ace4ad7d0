// Package config provides configuration management for leaguecrawl.
//
// Configuration is layered: compiled-in defaults, then the optional
// .leaguecrawl YAML file (current directory, then home directory), then
// CLI flags. The resulting Config struct is passed through the
// application by dependency injection; there is no global state.
//
// Data locations follow the XDG Base Directory Specification via
// github.com/adrg/xdg: the SQLite database and crawl checkpoint live in
// the data directory, the cached player directory in the cache directory.
package config
