package fs

import (
	"bufio"
	"os"
	"strings"
)

// LoadSearchRoots reads user-configured search roots from a plain text
// file, one absolute path per line. An absent or unreadable file silently
// yields no roots; lines naming missing directories are dropped.
func LoadSearchRoots(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var roots []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if isDir(ExpandHome(line)) {
			roots = append(roots, ExpandHome(line))
		}
	}
	return roots
}
