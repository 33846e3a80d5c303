package safeio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveWithinRoot resolves a user-provided relative path into an absolute path within root.
// It rejects absolute paths and any path that escapes the root via .. segments.
func ResolveWithinRoot(root string, userPath string) (absPath string, relPath string, err error) {
	if root == "" {
		return "", "", fmt.Errorf("project root is empty")
	}
	if userPath == "" {
		return "", "", fmt.Errorf("path is empty")
	}
	if filepath.IsAbs(userPath) {
		return "", "", fmt.Errorf("absolute paths are not allowed: %s", userPath)
	}

	clean := filepath.Clean(userPath)
	if clean == "." {
		return "", "", fmt.Errorf("invalid path: %s", userPath)
	}

	sep := string(os.PathSeparator)
	if clean == ".." || strings.HasPrefix(clean, ".."+sep) {
		return "", "", fmt.Errorf("path escapes project root: %s", userPath)
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve project root: %w", err)
	}
	joined := filepath.Join(rootAbs, clean)
	joinedAbs, err := filepath.Abs(joined)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve path: %w", err)
	}

	rootWithSep := rootAbs
	if !strings.HasSuffix(rootWithSep, sep) {
		rootWithSep += sep
	}
	if joinedAbs != rootAbs && !strings.HasPrefix(joinedAbs, rootWithSep) {
		return "", "", fmt.Errorf("resolved path is outside project root")
	}

	return joinedAbs, clean, nil
}

// MaxFieldFileSize bounds files loaded into a field value
const MaxFieldFileSize = 1 << 20

// ReadFieldValue expands a field value of the form "@relative/path" into the
// contents of that file under root. Any other value is returned unchanged.
// "@@" escapes a literal leading "@". A value with whitespace after the "@"
// that names no file is prose ("@Mara confronts the captain") and is kept.
func ReadFieldValue(root string, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "@@") {
		return strings.Replace(value, "@@", "@", 1), nil
	}
	if !strings.HasPrefix(trimmed, "@") {
		return value, nil
	}

	ref := strings.TrimPrefix(trimmed, "@")
	prose := strings.ContainsAny(ref, " \t\n")

	absPath, _, err := ResolveWithinRoot(root, ref)
	if err != nil {
		if prose {
			return value, nil
		}
		return "", err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if prose {
			return value, nil
		}
		return "", fmt.Errorf("failed to read %s: %w", trimmed, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", trimmed)
	}
	if info.Size() > MaxFieldFileSize {
		return "", fmt.Errorf("%s is larger than %d bytes", trimmed, MaxFieldFileSize)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", trimmed, err)
	}
	return string(content), nil
}

// ExpandFields applies ReadFieldValue to every value, returning a new map
func ExpandFields(root string, fields map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	for name, value := range fields {
		expanded, err := ReadFieldValue(root, value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		out[name] = expanded
	}
	return out, nil
}
