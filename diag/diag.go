// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package diag delivers the emulator's one-line diagnostic messages to an
// embedder-provided sink, with message text localized from en-US formats.
package diag

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("rv32sim: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Sink receives one diagnostic line, without a trailing newline.
type Sink func(line string)

// Reporter prefixes messages with their category tag and hands them to the
// sink. The zero value reports through the standard logger.
type Reporter struct {
	Sink Sink
}

func (r Reporter) emit(tag string, format string, args ...any) {
	line := tag + " " + From(format, args...)
	if r.Sink == nil {
		log.Print(line)
		return
	}
	r.Sink(line)
}

// Core reports a [RISC-V] condition: program loads, branch outcomes, halts.
func (r Reporter) Core(format string, args ...any) {
	r.emit("[RISC-V]", format, args...)
}

// Warn reports a [Warning]: recoverable problems that substitute a default.
func (r Reporter) Warn(format string, args ...any) {
	r.emit("[Warning]", format, args...)
}

// Error reports an [Error]: malformed input with undefined effect.
func (r Reporter) Error(format string, args ...any) {
	r.emit("[Error]", format, args...)
}

// Label reports a [Label] binding during program loading.
func (r Reporter) Label(format string, args ...any) {
	r.emit("[Label]", format, args...)
}

// Exec reports an [Exec] trace line for the instruction being dispatched.
func (r Reporter) Exec(format string, args ...any) {
	r.emit("[Exec]", format, args...)
}
