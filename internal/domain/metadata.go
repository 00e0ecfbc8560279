package domain

import "strings"

// Settings are the installation-wide values shared by every migration.
type Settings struct {
	Domain       string
	BasePathRoot string
	TermBrowser  string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Domain:       "purl.brain-bican.org",
		BasePathRoot: "/obo/",
		TermBrowser:  "ontobee",
	}
}

// BasePath returns the base path for idspace, e.g. "/obo/foo" for "FOO".
func (s Settings) BasePath(idspace string) string {
	return s.BasePathRoot + strings.ToLower(idspace)
}

// Metadata parameterizes the header of one generated configuration.
type Metadata struct {
	IdspaceUpper string
	IdspaceLower string
	Domain       string
	BasePath     string
	TermBrowser  string
	// Products are the derived product file names, e.g. foo.owl.
	Products []string
}

// NewMetadata derives header metadata for idspace.
// The caller is expected to have checked that idspace is non-empty.
func NewMetadata(idspace string, s Settings) Metadata {
	lower := strings.ToLower(idspace)
	return Metadata{
		IdspaceUpper: strings.ToUpper(idspace),
		IdspaceLower: lower,
		Domain:       s.Domain,
		BasePath:     s.BasePath(idspace),
		TermBrowser:  s.TermBrowser,
		Products:     []string{lower + ".owl", lower + ".obo"},
	}
}
