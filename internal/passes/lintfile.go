package passes

import "path/filepath"

// sameFile reports whether a lint's reported file refers to the same
// file as path, the workspace-relative path the current Tree was
// parsed from. go vet and staticcheck are free to report paths
// relative to the invocation's working directory, with a leading
// "./", or as an absolute path, so an exact string match is not
// reliable; this compares cleaned, slash-normalized suffixes instead.
func sameFile(lintFile, path string) bool {
	if lintFile == "" || path == "" {
		return false
	}
	a := filepath.ToSlash(filepath.Clean(lintFile))
	b := filepath.ToSlash(filepath.Clean(path))
	if a == b {
		return true
	}
	return hasPathSuffix(a, b) || hasPathSuffix(b, a)
}

// hasPathSuffix reports whether full ends with suffix on a path
// component boundary, so "project/sub/file.go" matches "sub/file.go"
// but not "ubsub/file.go".
func hasPathSuffix(full, suffix string) bool {
	if full == suffix {
		return true
	}
	if len(full) <= len(suffix) {
		return false
	}
	cut := len(full) - len(suffix)
	return full[cut-1] == '/' && full[cut:] == suffix
}
