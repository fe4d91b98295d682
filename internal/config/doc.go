// Package config handles loading sentiboard's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/sentiboard/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	api_base        = "127.0.0.1:8080"
//	session_id      = "chat-42"
//	poll_interval   = "5s"
//	request_timeout = "10s"
//	log_dir         = "~/.local/share/sentiboard/logs"
//	timezone        = "Asia/Kolkata"
//	score_scale     = "auto"   # auto | unit | ten
//	show_escalate   = true
//
// Every field is optional. Durations use Go duration syntax and must be
// positive. The time zone is only used to render the "last updated" line; the
// tz database is embedded so lookups work on minimal systems.
//
// # Errors
//
// A missing file is not an error. Unreadable files, invalid TOML, bad
// durations, unknown time zones and unknown score scales are returned as
// errors prefixed with "parse config".
package config
