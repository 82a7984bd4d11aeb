package agent

import (
	"os"
	"path/filepath"
)

// defaultBinary is the agent CLI executable name discovered on $PATH and
// in the well-known install directories.
const defaultBinary = "agent"

// wellKnownInstallDirs returns installation directories probed after
// $PATH, in order.
func wellKnownInstallDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "bin"))
	}
	return append(dirs, "/usr/local/bin", "/opt/homebrew/bin")
}

// locateCLI resolves the agent CLI binary. Search order: the explicit
// override path, each directory on $PATH, then the well-known install
// directories. First match wins. On failure the returned error carries
// every location attempted, in order.
func locateCLI(override string) (string, error) {
	var searched []string

	if override != "" {
		if isExecutable(override) {
			return override, nil
		}
		searched = append(searched, override)
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, defaultBinary)
		if isExecutable(path) {
			return path, nil
		}
		searched = append(searched, path)
	}

	for _, dir := range wellKnownInstallDirs() {
		path := filepath.Join(dir, defaultBinary)
		if isExecutable(path) {
			return path, nil
		}
		searched = append(searched, path)
	}

	return "", &CLINotFoundError{Searched: searched}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}
