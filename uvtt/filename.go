package uvtt

import "strings"

// File extensions for the interchange format. Both spellings are accepted
// on load; .uvtt is the default on save.
const (
	ExtUVTT   = ".uvtt"
	ExtDD2VTT = ".dd2vtt"
)

// SanitizeFilename turns a map name into a safe filename stem: path
// separators and characters rejected by common filesystems are replaced
// with underscores, runs of whitespace collapse to a single underscore,
// and an empty result falls back to "map".
func SanitizeFilename(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == ' ' || r == '\t':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|' || r < 0x20:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		default:
			b.WriteRune(r)
			lastUnderscore = false
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "map"
	}
	return out
}

// ExportFilename returns the download filename for a map:
// "<sanitized name><ext>". An unrecognized ext falls back to .uvtt.
func ExportFilename(name, ext string) string {
	if ext != ExtUVTT && ext != ExtDD2VTT {
		ext = ExtUVTT
	}
	return SanitizeFilename(name) + ext
}
