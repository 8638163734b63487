package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// buildDirPattern matches the work directory names `go run` and `go test`
// create under the temp directory.
var buildDirPattern = regexp.MustCompile(`^go-build[0-9]+$`)

// ResolveRoot returns the absolute directory that holds the launcher.
//
// The launcher is normally the running executable. When the executable was
// produced by `go run` it sits in a throwaway build directory, so the
// directory of launcherSource (the launcher's own source file, as reported by
// runtime.Caller) is used instead. launcherSource may be empty.
func ResolveRoot(launcherSource string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	return resolveRoot(exe, launcherSource, buildTempDirs())
}

func resolveRoot(exe, launcherSource string, tmpDirs []string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	dir := filepath.Dir(exe)
	if launcherSource != "" && inBuildCache(dir, tmpDirs) {
		dir = filepath.Dir(launcherSource)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("resolve root: %s is not a directory", abs)
	}
	return abs, nil
}

// buildTempDirs returns the directories the go command creates its work
// directories in: GOTMPDIR when set, and the system temp directory.
func buildTempDirs() []string {
	var dirs []string
	for _, d := range []string{os.Getenv("GOTMPDIR"), os.TempDir()} {
		if d == "" {
			continue
		}
		if resolved, err := filepath.EvalSymlinks(d); err == nil {
			d = resolved
		}
		dirs = append(dirs, filepath.Clean(d))
	}
	return dirs
}

// inBuildCache reports whether dir is inside a go-build<digits> work
// directory that sits directly under one of tmpDirs.
func inBuildCache(dir string, tmpDirs []string) bool {
	for d := filepath.Clean(dir); ; d = filepath.Dir(d) {
		if buildDirPattern.MatchString(filepath.Base(d)) {
			parent := filepath.Dir(d)
			for _, tmp := range tmpDirs {
				if parent == tmp {
					return true
				}
			}
		}
		if filepath.Dir(d) == d {
			return false
		}
	}
}
