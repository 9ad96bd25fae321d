package server

import (
	"path/filepath"
	"strings"
)

// AllowedFile reports whether name carries the accepted workbook extension.
func AllowedFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), AllowedExtension)
}

// SecureFilename strips directories from name and replaces every character outside
// [A-Za-z0-9._-] with an underscore. Leading dots and underscores are dropped so the
// result can never be a hidden file or a path traversal.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	cleaned := strings.TrimLeft(b.String(), "._")
	if cleaned == "" {
		return "workbook" + AllowedExtension
	}
	return cleaned
}

// DownloadName derives the report attachment name from the uploaded file name,
// e.g. "sales.twb" becomes "sales_metadata.xlsx".
func DownloadName(name string) string {
	base := name
	if AllowedFile(name) {
		base = name[:len(name)-len(AllowedExtension)]
	}
	return base + "_metadata.xlsx"
}
