package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyURLPath    = "url_path"
	KeyField      = "field"
	KeyPosts      = "posts"
	KeyExcluded   = "excluded"
	KeyArtifact   = "artifact"
	KeyBuildID    = "build_id"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URLPath(p string) slog.Attr      { return slog.String(KeyURLPath, p) }
func Field(f string) slog.Attr        { return slog.String(KeyField, f) }
func Posts(n int) slog.Attr           { return slog.Int(KeyPosts, n) }
func Excluded(n int) slog.Attr        { return slog.Int(KeyExcluded, n) }
func Artifact(name string) slog.Attr  { return slog.String(KeyArtifact, name) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
