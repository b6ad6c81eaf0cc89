// Package assets holds files embedded into the server binary.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed catalog.txt
var FS embed.FS

// readLines returns the non-blank, non-comment lines of an embedded file,
// trimmed but with their original casing.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// CatalogList returns the embedded word catalog in display order.
func CatalogList() ([]string, error) {
	return readLines("catalog.txt")
}
