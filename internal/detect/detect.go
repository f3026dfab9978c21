package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

var phpExtensions = map[string]bool{
	".php":   true,
	".php3":  true,
	".php4":  true,
	".php5":  true,
	".php7":  true,
	".phtml": true,
	".phps":  true,
}

// PathIsPHP reports whether the file name alone identifies PHP source.
func PathIsPHP(path string) bool {
	return phpExtensions[strings.ToLower(filepath.Ext(path))]
}

// Sniff inspects leading file content for files without a telling
// extension: a php shebang or an opening <?php tag.
func Sniff(data []byte) bool {
	if shebangIsPHP(data) {
		return true
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("<?php")) || bytes.HasPrefix(trimmed, []byte("<?="))
}

func shebangIsPHP(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return false
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	return strings.Contains(strings.ToLower(string(data[:end])), "php")
}
