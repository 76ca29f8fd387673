// Package config loads confetti's settings.
//
// Settings are layered: built-in defaults, then a TOML or YAML file, then
// CONFETTI_* environment variables. Command line flags are applied by the
// caller on the returned Config before Validate.
//
// Example:
//
//	[confetti]
//	enabled = true
//	debounce = "300ms"
//	duration = "500ms"
//	width = "2em"
//
//	[logging]
//	level = "info"
//
//	[plugin]
//	script = "~/.config/confetti/init.lua"
package config
