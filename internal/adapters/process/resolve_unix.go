//go:build linux || darwin || freebsd

package process

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// resolveExecutable locates the executable the way the shell will: paths containing a
// slash are checked as is, bare names are searched in the PATH of env.
func resolveExecutable(name string, env []string) (string, error) {
	if strings.ContainsRune(name, '/') {
		if err := findExecutable(name); err != nil {
			return "", err
		}
		return name, nil
	}
	return lookPath(name, env)
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
