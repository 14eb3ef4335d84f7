package path

import (
	"path/filepath"
	"runtime"
)

// RootPath returns the absolute project root, resolved from this file's location
// (/project/utils/path/path.go -> /project).
func RootPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("unable to resolve caller location")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

// Resolve anchors a relative path at the project root.
func Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(RootPath(), p)
}
