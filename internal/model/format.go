package model

import (
	"strings"

	"dirsync/internal/syncerr"
)

// Format selects the log artifact serialization.
type Format string

const (
	// FormatStructured is the markup (XML) log.
	FormatStructured Format = "structured"
	// FormatTagged is the object/array (JSON) log.
	FormatTagged Format = "tagged"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "structured", "xml":
		return FormatStructured, nil
	case "tagged", "json":
		return FormatTagged, nil
	default:
		return "", syncerr.InvalidInput("parse format", "unknown format %q (want structured|xml or tagged|json)", s)
	}
}

func (f Format) String() string {
	return string(f)
}
