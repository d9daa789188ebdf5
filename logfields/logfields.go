// Package logfields holds the attribute names shared by every binding stage.
package logfields

import "log/slog"

const (
	KeyStage   = "stage"
	KeyGroup   = "group"
	KeyPath    = "path"
	KeyCount   = "count"
	KeyChapter = "chapter"
	KeyFormat  = "format"
	KeyState   = "state"
	KeyError   = "error"
)

func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func Group(name string) slog.Attr { return slog.String(KeyGroup, name) }
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Chapter(id int) slog.Attr    { return slog.Int(KeyChapter, id) }
func Format(f string) slog.Attr   { return slog.String(KeyFormat, f) }
func State(s string) slog.Attr    { return slog.String(KeyState, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
