package catalog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"gettext-extractor/internal/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(file string, line int, kv ...string) extract.Record {
	fields := make(map[string]any)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}
	return extract.Record{Fields: fields, Line: line, Filename: file}
}

func sample() []extract.Record {
	return []extract.Record{
		rec("a.js", 1, "msgid", "Hello"),
		rec("b.js", 2, "msgctxt", "menu", "msgid", "Open"),
		rec("a.js", 5, "msgid", "Hello"),
		rec("b.js", 3, "msgid", "%d file", "msgid_plural", "%d files"),
		rec("a.js", 5, "msgid", "Hello"),
		rec("c.js", 1, "domain", "admin", "msgid", "Ban user"),
		rec("c.js", 2, "value", "no msgid"),
	}
}

func TestBuild_Merges(t *testing.T) {
	c := Build("messages", sample())
	require.Equal(t, 3, c.Len())

	hello := c.Entries[0]
	assert.Equal(t, "Hello", hello.ID)
	assert.Equal(t, []Reference{{"a.js", 1}, {"a.js", 5}}, hello.References)

	open := c.Entries[1]
	assert.Equal(t, "menu", open.Context)

	plural := c.Entries[2]
	assert.Equal(t, "%d files", plural.Plural)
	assert.Equal(t, []string{"javascript-format"}, plural.Flags)
}

func TestBuild_ContextSeparatesMessages(t *testing.T) {
	c := Build("messages", []extract.Record{
		rec("a.js", 1, "msgid", "Open"),
		rec("a.js", 2, "msgctxt", "menu", "msgid", "Open"),
	})
	assert.Equal(t, 2, c.Len())
}

func TestBuild_Domains(t *testing.T) {
	assert.Equal(t, []string{"admin"}, Domains(sample()))

	admin := Build("admin", sample())
	ids := make([]string, 0, admin.Len())
	for _, e := range admin.Entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"Hello", "Open", "%d file", "Ban user"}, ids)
}

func TestWritePOT(t *testing.T) {
	c := Build("messages", sample())
	var buf bytes.Buffer
	err := WritePOT(&buf, c, Header{Project: "demo 1.0", Created: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	want := `# Translation template for domain "messages".
msgid ""
msgstr ""
"Project-Id-Version: demo 1.0\n"
"POT-Creation-Date: 2026-10-14 12:00+0000\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"

#: a.js:1 a.js:5
msgid "Hello"
msgstr ""

#: b.js:2
msgctxt "menu"
msgid "Open"
msgstr ""

#: b.js:3
#, javascript-format
msgid "%d file"
msgid_plural "%d files"
msgstr[0] ""
msgstr[1] ""
`
	assert.Equal(t, want, buf.String())
}

func TestWriteString_Quoting(t *testing.T) {
	var buf bytes.Buffer
	writeString(&buf, "msgid", `say "hi"	now`)
	assert.Equal(t, "msgid \"say \\\"hi\\\"\\tnow\"\n", buf.String())

	buf.Reset()
	writeString(&buf, "msgid", "line one\nline two")
	assert.Equal(t, "msgid \"\"\n\"line one\\n\"\n\"line two\"\n", buf.String())

	buf.Reset()
	writeString(&buf, "msgid", "trailing\n")
	assert.Equal(t, "msgid \"trailing\\n\"\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []extract.Record{rec("a.js", 1, "msgid", "<b>Hi</b>")}))
	assert.JSONEq(t, `[{"msgid":"<b>Hi</b>","line":1,"filename":"a.js"}]`, buf.String())
	assert.Contains(t, buf.String(), "<b>")

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, Build("messages", sample())))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "msgctxt\tmsgid\tmsgid_plural\tflags\treferences", lines[0])
	assert.Equal(t, "\tHello\t\t\ta.js:1 a.js:5", lines[1])
	assert.Equal(t, "\t%d file\t%d files\tjavascript-format\tb.js:3", lines[3])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
