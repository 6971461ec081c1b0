package lib

import (
	"fmt"
	"io"
	"os"
)

const (
	ColorRed     = "\033[0;31m"
	ColorGreen   = "\033[0;32m"
	ColorYellow  = "\033[0;33m"
	ColorBlue    = "\033[0;34m"
	ColorMagenta = "\033[0;35m"
	ColorClear   = "\033[0m"
)

var ERR = "× ERR:"
var INFO = ">"
var OK = "✓"
var RELOAD = "↻"
var ITEM = "-"

// Stdout and Stderr are where the Print* helpers write, tests swap them
var Stdout io.Writer = os.Stdout
var Stderr io.Writer = os.Stderr

func UseColor(use bool) {
	if use {
		ERR = Red(ERR)
		INFO = Yellow(INFO)
		OK = Green(OK)
		RELOAD = Blue(RELOAD)
		ITEM = Magenta(ITEM)
	}
}

func Print(a ...any) {
	_, _ = fmt.Fprintln(Stdout, a...)
}

func PrintError(a ...any) {
	_, _ = fmt.Fprintln(Stderr, append([]any{ERR}, a...)...)
}

func PrintInfo(a ...any) {
	_, _ = fmt.Fprintln(Stderr, append([]any{INFO}, a...)...)
}

func PrintInfof(format string, a ...any) {
	_, _ = fmt.Fprintf(Stderr, "%s "+format, append([]any{INFO}, a...)...)
}

func PrintOk(a ...any) {
	_, _ = fmt.Fprintln(Stderr, append([]any{OK}, a...)...)
}

func PrintItem(a ...any) {
	_, _ = fmt.Fprintln(Stderr, append([]any{ITEM}, a...)...)
}

func PrintReload(a ...any) {
	_, _ = fmt.Fprintln(Stderr, append([]any{RELOAD}, a...)...)
}

func Red(s string) string {
	return ColorRed + s + ColorClear
}

func Green(s string) string {
	return ColorGreen + s + ColorClear
}

func Yellow(s string) string {
	return ColorYellow + s + ColorClear
}

func Blue(s string) string {
	return ColorBlue + s + ColorClear
}

func Magenta(s string) string {
	return ColorMagenta + s + ColorClear
}
