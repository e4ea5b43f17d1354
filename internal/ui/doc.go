// Package ui holds the lipgloss theme and the small print helpers the
// CLI commands share.
package ui
