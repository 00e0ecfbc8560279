// Package provider adapts concrete parsers to the domain event interface.
//
// Only this package knows which markup library drives a migration; callers
// see a domain.EventHandler receiving element and character events.
//
// Import Path: purl-migrate.io/migrator/internal/provider
package provider

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"

	"purl-migrate.io/migrator/internal/domain"
	apperrors "purl-migrate.io/migrator/internal/pkg/errors"
)

// EventSource streams a document into an event handler.
type EventSource interface {
	// Stream reads r to the end, pushing events into h. Markup and encoding
	// errors are returned as MALFORMED_SOURCE; handler errors are returned
	// unchanged.
	Stream(ctx context.Context, r io.Reader, h domain.EventHandler) error
}

// XMLSource is an EventSource backed by encoding/xml.
type XMLSource struct{}

// NewXMLSource creates a new XMLSource.
func NewXMLSource() *XMLSource {
	return &XMLSource{}
}

var _ EventSource = (*XMLSource)(nil)

// Stream implements EventSource.
// Documents declaring a non UTF-8 encoding (e.g. ISO-8859-1) are transcoded.
// Exactly one root element is accepted; markup or text after it is malformed.
func (s *XMLSource) Stream(ctx context.Context, r io.Reader, h domain.EventHandler) error {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	depth := 0
	rootClosed := false
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return apperrors.MalformedSource(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return junkAfterRoot(dec)
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			depth++
			if err := h.StartElement(t.Name.Local); err != nil {
				return err
			}
		case xml.CharData:
			if depth == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					if rootClosed {
						return junkAfterRoot(dec)
					}
					return apperrors.MalformedSource(syntaxError(dec, "text before document element"))
				}
				continue
			}
			if err := h.Characters(string(t)); err != nil {
				return err
			}
		case xml.EndElement:
			depth--
			if depth == 0 {
				rootClosed = true
			}
			if err := h.EndElement(t.Name.Local); err != nil {
				return err
			}
		}
	}
}

func junkAfterRoot(dec *xml.Decoder) error {
	return apperrors.MalformedSource(syntaxError(dec, "junk after document element"))
}

func syntaxError(dec *xml.Decoder, msg string) *xml.SyntaxError {
	line, _ := dec.InputPos()
	return &xml.SyntaxError{Msg: msg, Line: line}
}
