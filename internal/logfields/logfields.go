package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeySlug       = "slug"
	KeySection    = "section"
	KeyLayout     = "layout"
	KeyOutput     = "output"
	KeyTheme      = "theme"
	KeyCount      = "count"
	KeyReason     = "reason"
	KeyError      = "error"
	KeyResult     = "result"
	KeyOutcome    = "outcome"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Layout(l string) slog.Attr       { return slog.String(KeyLayout, l) }
func Output(o string) slog.Attr       { return slog.String(KeyOutput, o) }
func Theme(t string) slog.Attr        { return slog.String(KeyTheme, t) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Result(r string) slog.Attr       { return slog.String(KeyResult, r) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }

// Duration converts d to a millisecond attr.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d.Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
