// Package ui holds the color themes shared by the CLI presenter and the
// terminal dashboard. It exposes ANSI escape codes for plain output and
// lipgloss palettes for the TUI, selected once at startup and honored by
// every presentation layer.
package ui
