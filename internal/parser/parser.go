// Package parser turns the human-readable output of the mixer and audio
// server tools into typed control state. Every function here is pure apart
// from logging the raw text of outputs it cannot understand.
package parser

import (
	"strings"

	"audioctl/internal/domain"
	"audioctl/internal/logging"
)

func failure(op, raw, format string, args ...any) error {
	err := domain.ParseFailure(op, format, args...)
	logging.Warnf("%s: %s; raw output:\n%s", op, err.Error(), raw)
	return err
}

func lines(raw string) []string {
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}
