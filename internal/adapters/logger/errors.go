package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// messager matches the Message() method of zerr errors, which reports a single
// layer of the chain.
type messager interface {
	Message() string
}

// metadataer matches errors exposing their key-value metadata.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one layer of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: metadataOf(current)})
			break
		}
		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: metadataOf(current)})
		current = errors.Unwrap(current)
	}

	return entries
}

func metadataOf(err error) map[string]any {
	if md, ok := err.(metadataer); ok {
		return md.Metadata()
	}
	return nil
}

// metadataAttrs flattens the metadata of a chain into slog attributes. When a key
// repeats, the outermost layer wins.
func metadataAttrs(entries []ErrorEntry) []any {
	seen := map[string]bool{ErrorKey: true}
	var attrs []any
	for _, entry := range entries {
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			if seen[key] {
				continue
			}
			seen[key] = true
			attrs = append(attrs, slog.Any(key, entry.Metadata[key]))
		}
	}
	return attrs
}

func formatErrorEntries(entries []ErrorEntry) string {
	lines := make([]string, 0, len(entries)*2)

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, indent string
		if i == 0 {
			head, indent = "Error: ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
