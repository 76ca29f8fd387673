// Package plugin runs a user's Lua script against the confetti controller.
//
// A Runner owns one sandboxed Lua state with the confetti API installed.
// Scripts may query the controller, trigger refreshes and react to
// decorations being shown or released.
package plugin
