package moduleid

import (
	"crypto/sha256"
	"encoding/base64"
	"path"
	"path/filepath"
	"strings"
)

const BUILD_HASH_LENGTH = 12

// Relative returns the slash-separated path of a module relative to root. Module ids that are not
// absolute are already relative to the root, root can be empty.
func Relative(root, moduleID string) string {
	moduleID = filepath.ToSlash(moduleID)

	if root != "" && path.IsAbs(moduleID) {
		root = filepath.ToSlash(root)
		if rel, err := filepath.Rel(root, moduleID); err == nil {
			return path.Clean(filepath.ToSlash(rel))
		}
	}
	return strings.TrimPrefix(path.Clean(moduleID), "/")
}

// Hash returns the base64url-encoded SHA-256 hash of a slash-separated path.
func Hash(relativePath string) string {
	sum := sha256.Sum256([]byte(filepath.ToSlash(relativePath)))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// BuildHash returns the function computing the id of the modules in production builds:
// the first 12 characters of the hash of the module's path relative to root.
func BuildHash(root string) func(moduleID string) string {
	return func(moduleID string) string {
		return Hash(Relative(root, moduleID))[:BUILD_HASH_LENGTH]
	}
}

// ServePath returns the function computing the id of the modules in development: the path of the
// module served by the dev server (/src/components/button.tsx).
func ServePath(root string) func(moduleID string) string {
	return func(moduleID string) string {
		return "/" + Relative(root, moduleID)
	}
}
