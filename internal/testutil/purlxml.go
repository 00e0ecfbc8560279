// Package testutil holds fixture helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Purl is one <purl> record of a fixture document.
type Purl struct {
	ID   string
	Type string
	URL  string
}

// PurlXML renders records as a PURL XML export, with the status attribute,
// the maintainers block and the nested <target><url> of real exports.
func PurlXML(records ...Purl) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n<purls>\n")
	for _, r := range records {
		b.WriteString("  <purl status=\"1\">\n")
		fmt.Fprintf(&b, "    <id>%s</id>\n", r.ID)
		fmt.Fprintf(&b, "    <type>%s</type>\n", r.Type)
		b.WriteString("    <maintainers><uid>admin</uid></maintainers>\n")
		fmt.Fprintf(&b, "    <target><url>%s</url></target>\n", r.URL)
		b.WriteString("  </purl>\n")
	}
	b.WriteString("</purls>\n")
	return b.String()
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}
