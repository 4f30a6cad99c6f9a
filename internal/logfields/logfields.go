package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeySnapshot   = "snapshot"
	KeyOutput     = "output"
	KeyEntityID   = "entity_id"
	KeyEntityName = "entity_name"
	KeyKind       = "kind"
	KeyTemplate   = "template"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyPolicy     = "policy"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Snapshot(p string) slog.Attr     { return slog.String(KeySnapshot, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func EntityID(id int) slog.Attr       { return slog.Int(KeyEntityID, id) }
func EntityName(n string) slog.Attr   { return slog.String(KeyEntityName, n) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
