// Package utils holds the small helpers shared by the CLI and the TUI:
// number formatting, debouncing, sprite URLs and clipboard access.
package utils
