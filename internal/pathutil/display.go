package pathutil

import (
	"path/filepath"
	"strings"
)

// Display shortens a path for terminal output: the home directory
// collapses to "~" and a leading "./" is dropped. The path on disk is
// never touched; this is presentation only.
func Display(path, home string) string {
	p := filepath.ToSlash(path)
	h := strings.TrimRight(filepath.ToSlash(home), "/")
	if h != "" {
		if p == h {
			return "~"
		}
		if strings.HasPrefix(p, h+"/") {
			p = "~" + p[len(h):]
		}
	}
	p = strings.TrimPrefix(p, "./")
	return p
}
