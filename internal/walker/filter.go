package walker

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Directory names that never hold user documents.
var skipDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
}

func skipDir(name string) bool {
	if skipDirs[name] {
		return true
	}
	// Hidden directories are skipped wholesale.
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// matches applies include patterns first, then exclude patterns, against
// a slash-separated relative path.
func matches(relPath string, include, exclude []string) bool {
	if len(include) > 0 && !matchesAny(relPath, include) {
		return false
	}
	return !matchesAny(relPath, exclude)
}

func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
		// Also match against the bare filename so simple patterns like
		// "*.pdf" work at any depth.
		base := relPath
		if idx := strings.LastIndex(relPath, "/"); idx >= 0 {
			base = relPath[idx+1:]
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
