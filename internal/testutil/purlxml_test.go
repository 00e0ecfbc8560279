package testutil

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPurlXML(t *testing.T) {
	doc := PurlXML(
		Purl{ID: "/obo/foo/a", Type: "302", URL: "http://example.org/a"},
		Purl{ID: "/obo/foo/b", Type: "partial", URL: "ftp://example.org/b"},
	)

	var parsed struct {
		Purls []struct {
			ID   string `xml:"id"`
			Type string `xml:"type"`
			URL  string `xml:"target>url"`
		} `xml:"purl"`
	}
	require.NoError(t, xml.Unmarshal([]byte(doc), &parsed))
	require.Len(t, parsed.Purls, 2)
	require.Equal(t, "partial", parsed.Purls[1].Type)
	require.Equal(t, "ftp://example.org/b", parsed.Purls[1].URL)
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, t.TempDir(), "foo.xml", "<purls/>")
	require.Equal(t, "foo.xml", filepath.Base(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<purls/>", string(got))
}
