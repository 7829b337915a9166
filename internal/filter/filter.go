// Package filter reduces a unified diff to the file sections worth
// reviewing.
//
// It is a pure text transformation: no I/O, no failure modes. Malformed
// input degrades to a partial or empty result, never an error, and file
// sections come out in the same relative order they went in.
package filter

import (
	"path/filepath"
	"strings"
)

// sectionHeader starts every per-file section in git's unified diff output,
// e.g. "diff --git a/src/app.py b/src/app.py".
const sectionHeader = "diff --git "

// codeExtensions is the allow-set of extensions considered source code.
// Matched case-insensitively; a path with no extension never matches.
var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".tsx": true, ".jsx": true,
	".go": true, ".rs": true, ".java": true, ".kt": true,
	".c": true, ".cpp": true, ".h": true, ".hpp": true,
	".rb": true, ".php": true, ".swift": true,
	".cs": true, ".scala": true, ".clj": true,
	".sh": true, ".bash": true, ".zsh": true,
}

// excludedFragments are path substrings that mark generated, vendored, or
// VCS-internal trees. Exclusion wins over a recognized extension.
var excludedFragments = []string{
	"node_modules/",
	"vendor/",
	"__pycache__/",
	".git/",
	"dist/",
	"build/",
	".next/",
}

// Filter returns the subset of diff containing only sections for reviewable
// source files. Lines before the first section header are dropped.
func Filter(diff string) string {
	var kept []string
	include := false

	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, sectionHeader) {
			// Header layout: diff --git a/<path> b/<path>. When the header
			// doesn't parse, the previous flag carries over.
			if path, ok := headerPath(line); ok {
				include = Reviewable(path)
			}
		}
		if include {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}

func headerPath(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) < 4 {
		return "", false
	}
	return strings.TrimPrefix(parts[2], "a/"), true
}

// Reviewable reports whether a path should be sent for review: its
// extension must be in the allow-set and no excluded fragment may appear
// anywhere in the path.
func Reviewable(path string) bool {
	for _, fragment := range excludedFragments {
		if strings.Contains(path, fragment) {
			return false
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return codeExtensions[ext]
}
