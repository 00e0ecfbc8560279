package provider

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "purl-migrate.io/migrator/internal/pkg/errors"
)

// recorder captures events as "<name", "~text", ">name".
type recorder struct {
	events  []string
	failOn  string
	failErr error
}

func (r *recorder) StartElement(name string) error {
	r.events = append(r.events, "<"+name)
	if name == r.failOn {
		return r.failErr
	}
	return nil
}

func (r *recorder) Characters(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	r.events = append(r.events, "~"+text)
	return nil
}

func (r *recorder) EndElement(name string) error {
	r.events = append(r.events, ">"+name)
	return nil
}

func TestXMLSource_Stream(t *testing.T) {
	src := `<?xml version="1.0"?>
<purls>
  <purl status="1">
    <id>/obo/foo/a</id>
    <!-- comment -->
    <target><url><![CDATA[http://example.org/a]]></url></target>
  </purl>
</purls>`

	rec := &recorder{}
	err := NewXMLSource().Stream(context.Background(), strings.NewReader(src), rec)
	require.NoError(t, err)
	require.Equal(t, []string{
		"<purls",
		"<purl",
		"<id", "~/obo/foo/a", ">id",
		"<target", "<url", "~http://example.org/a", ">url", ">target",
		">purl",
		">purls",
	}, rec.events)
}

func TestXMLSource_EmptyInput(t *testing.T) {
	rec := &recorder{}
	err := NewXMLSource().Stream(context.Background(), strings.NewReader(""), rec)
	require.NoError(t, err)
	require.Empty(t, rec.events)
}

func TestXMLSource_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unbalanced", "<purls><purl><id>x</purl></purls>"},
		{"truncated", "<purls><purl>"},
		{"undefined entity", "<purls>&bogus;</purls>"},
		{"second root", "<purls><purl/></purls><purls><purl/></purls>"},
		{"text after root", "<purls><purl/></purls>trailing"},
		{"text before root", "leading<purls/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewXMLSource().Stream(context.Background(), strings.NewReader(tt.src), &recorder{})
			require.Error(t, err)
			require.True(t, errors.Is(err, apperrors.ErrMalformedSource), "err = %v", err)
		})
	}
}

func TestXMLSource_AfterRoot(t *testing.T) {
	src := "<?xml version=\"1.0\"?>\n<purls><purl/></purls>\n<!-- trailer -->\n<?pi x?>\n"

	rec := &recorder{}
	err := NewXMLSource().Stream(context.Background(), strings.NewReader(src), rec)
	require.NoError(t, err)
	require.Equal(t, []string{"<purls", "<purl", ">purl", ">purls"}, rec.events)

	rec = &recorder{}
	err = NewXMLSource().Stream(context.Background(), strings.NewReader("<purls/>\n<purls/>"), rec)
	require.ErrorIs(t, err, apperrors.ErrMalformedSource)
	require.Contains(t, err.Error(), "junk after document element")
	require.Equal(t, []string{"<purls", ">purls"}, rec.events, "nothing after the root reaches the handler")
}

func TestXMLSource_Latin1(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="ISO-8859-1"?><purls><id>caf`)
	buf.WriteByte(0xE9) // é in Latin-1
	buf.WriteString(`</id></purls>`)

	rec := &recorder{}
	err := NewXMLSource().Stream(context.Background(), &buf, rec)
	require.NoError(t, err)
	require.Contains(t, rec.events, "~café")
}

func TestXMLSource_HandlerErrorPassesThrough(t *testing.T) {
	stop := errors.New("stop")
	rec := &recorder{failOn: "purl", failErr: stop}

	err := NewXMLSource().Stream(context.Background(), strings.NewReader("<purls><purl/></purls>"), rec)
	require.ErrorIs(t, err, stop)
	require.False(t, errors.Is(err, apperrors.ErrMalformedSource))
}

func TestXMLSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewXMLSource().Stream(ctx, strings.NewReader("<purls/>"), &recorder{})
	require.ErrorIs(t, err, context.Canceled)
}
