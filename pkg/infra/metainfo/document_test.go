package metainfo_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/metarel/pkg/domain/model"
	"github.com/m-mizutani/metarel/pkg/infra/metainfo"
)

func render(t *testing.T, doc *metainfo.Document) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	gt.NoError(t, err)
	return buf.String()
}

func TestDocument_PrependRelease(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<component>
  <id>so.libdb.dissent</id>
  <releases>
    <release version="v1.0" date="2023-01-01">
      <url>https://github.com/diamondburned/dissent/releases/tag/v1.0</url>
    </release>
  </releases>
</component>
`
	want := `<?xml version="1.0" encoding="UTF-8"?>
<component>
  <id>so.libdb.dissent</id>
  <releases>
    <release version="v1.1" date="2024-05-05">
      <url>https://github.com/diamondburned/dissent/releases/tag/v1.1</url>
    </release>
    <release version="v1.0" date="2023-01-01">
      <url>https://github.com/diamondburned/dissent/releases/tag/v1.0</url>
    </release>
  </releases>
</component>
`

	doc, err := metainfo.ParseBytes([]byte(src))
	gt.NoError(t, err)

	gt.NoError(t, doc.PrependRelease(&model.Release{
		Version: "v1.1",
		Date:    "2024-05-05",
		URL:     "https://github.com/diamondburned/dissent/releases/tag/v1.1",
	}))

	gt.String(t, render(t, doc)).Equal(want)
}

func TestDocument_PrependRelease_EmptyReleases(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<component>
  <releases/>
</component>
`
	want := `<?xml version="1.0" encoding="UTF-8"?>
<component>
  <releases>
    <release version="v2.0" date="2024-05-05">
      <url>https://example.com/v2.0</url>
    </release>
  </releases>
</component>
`

	doc, err := metainfo.ParseBytes([]byte(src))
	gt.NoError(t, err)

	gt.NoError(t, doc.PrependRelease(&model.Release{
		Version: "v2.0",
		Date:    "2024-05-05",
		URL:     "https://example.com/v2.0",
	}))

	gt.String(t, render(t, doc)).Equal(want)
	gt.Value(t, doc.Releases()).Equal([]model.Release{
		{Version: "v2.0", Date: "2024-05-05", URL: "https://example.com/v2.0"},
	})
}

func TestDocument_PrependRelease_PreservesOrder(t *testing.T) {
	data, err := os.ReadFile("testdata/dissent.metainfo.xml")
	gt.NoError(t, err)

	doc, err := metainfo.ParseBytes(data)
	gt.NoError(t, err)
	before := doc.Releases()
	gt.Number(t, len(before)).Equal(2)

	newRelease := model.Release{Version: "v0.0.23", Date: "2024-04-01", URL: "https://example.com/v0.0.23"}
	gt.NoError(t, doc.PrependRelease(&newRelease))

	after := doc.Releases()
	gt.Number(t, len(after)).Equal(len(before) + 1)
	gt.Value(t, after[0]).Equal(newRelease)
	gt.Value(t, after[1:]).Equal(before)
}

func TestDocument_PrependRelease_Duplicate(t *testing.T) {
	doc, err := metainfo.ParseBytes([]byte(`<component><releases/></component>`))
	gt.NoError(t, err)

	rel := model.Release{Version: "v1.0", Date: "2024-01-01", URL: "https://example.com"}
	gt.NoError(t, doc.PrependRelease(&rel))
	gt.NoError(t, doc.PrependRelease(&rel))

	gt.Value(t, doc.Releases()).Equal([]model.Release{rel, rel})
}

func TestDocument_PrependRelease_KeepsOtherNodes(t *testing.T) {
	data, err := os.ReadFile("testdata/dissent.metainfo.xml")
	gt.NoError(t, err)

	doc, err := metainfo.ParseBytes(data)
	gt.NoError(t, err)
	gt.NoError(t, doc.PrependRelease(&model.Release{Version: "v0.0.23", Date: "2024-04-01", URL: "https://example.com"}))

	out := render(t, doc)
	gt.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	gt.String(t, out).Contains("<!-- Copyright 2023 diamondburned -->")
	gt.String(t, out).Contains(`<component type="desktop-application">`)
	gt.String(t, out).Contains("<p>Dissent is a third-party Discord client.</p>")
	gt.String(t, out).Contains(`<content_rating type="oars-1.1"/>`)
	gt.String(t, out).Contains(`  <releases>
    <release version="v0.0.23" date="2024-04-01">
      <url>https://example.com</url>
    </release>
    <release version="v0.0.22" date="2024-03-12">`)
}

func TestDocument_PrependRelease_EscapesValues(t *testing.T) {
	doc, err := metainfo.ParseBytes([]byte(`<component><releases/></component>`))
	gt.NoError(t, err)

	rel := model.Release{Version: `v1 "beta"`, Date: "today", URL: "https://example.com/?a=1&b=2"}
	gt.NoError(t, doc.PrependRelease(&rel))

	out := render(t, doc)
	gt.String(t, out).Contains("a=1&amp;b=2")

	reparsed, err := metainfo.ParseBytes([]byte(out))
	gt.NoError(t, err)
	gt.Value(t, reparsed.Releases()).Equal([]model.Release{rel})
}

func TestDocument_PrependRelease_MissingReleases(t *testing.T) {
	doc, err := metainfo.ParseBytes([]byte(`<component><id>x</id></component>`))
	gt.NoError(t, err)

	err = doc.PrependRelease(&model.Release{Version: "v1.0"})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrReleasesNotFound))
	gt.Number(t, len(doc.Releases())).Equal(0)
}

func TestDocument_WriteTo_AddsDeclaration(t *testing.T) {
	doc, err := metainfo.ParseBytes([]byte(`<component><releases/></component>`))
	gt.NoError(t, err)

	out := render(t, doc)
	gt.String(t, out).Equal("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<component><releases/></component>")

	// a second write does not duplicate the declaration
	gt.String(t, render(t, doc)).Equal(out)
	gt.Number(t, strings.Count(out, "<?xml")).Equal(1)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty input", src: ""},
		{name: "unclosed element", src: "<component><releases>"},
		{name: "not XML", src: "releases: []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := metainfo.ParseBytes([]byte(tt.src))
			gt.Error(t, err)
		})
	}
}
