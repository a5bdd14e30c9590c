package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gettext-extractor/internal/extract"
)

// Format names the supported output formats.
type Format string

const (
	FormatPOT  Format = "pot"
	FormatJSON Format = "json"
	FormatTSV  Format = "tsv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPOT, FormatJSON, FormatTSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want pot, json or tsv)", s)
	}
}

// Header carries the POT header fields that vary per run.
type Header struct {
	Project string
	Created time.Time
}

// WritePOT writes c as a gettext template.
func WritePOT(w io.Writer, c *Catalog, h Header) error {
	bw := bufio.NewWriter(w)

	project := h.Project
	if project == "" {
		project = "PACKAGE VERSION"
	}

	fmt.Fprintf(bw, "# Translation template for domain %q.\n", c.Domain)
	fmt.Fprintln(bw, `msgid ""`)
	fmt.Fprintln(bw, `msgstr ""`)
	fmt.Fprintf(bw, "\"Project-Id-Version: %s\\n\"\n", escape(project))
	fmt.Fprintf(bw, "\"POT-Creation-Date: %s\\n\"\n", h.Created.Format("2006-01-02 15:04-0700"))
	fmt.Fprintln(bw, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(bw, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(bw, `"Content-Transfer-Encoding: 8bit\n"`)

	for _, e := range c.Entries {
		fmt.Fprintln(bw)

		refs := make([]string, len(e.References))
		for i, r := range e.References {
			refs[i] = r.String()
		}
		fmt.Fprintf(bw, "#: %s\n", strings.Join(refs, " "))
		if len(e.Flags) > 0 {
			fmt.Fprintf(bw, "#, %s\n", strings.Join(e.Flags, ", "))
		}
		if e.Context != "" {
			writeString(bw, "msgctxt", e.Context)
		}
		writeString(bw, "msgid", e.ID)
		if e.Plural != "" {
			writeString(bw, "msgid_plural", e.Plural)
			fmt.Fprintln(bw, `msgstr[0] ""`)
			fmt.Fprintln(bw, `msgstr[1] ""`)
		} else {
			fmt.Fprintln(bw, `msgstr ""`)
		}
	}

	return bw.Flush()
}

// writeString writes a keyword and its quoted value. Values spanning lines
// are split after each newline, starting with an empty string.
func writeString(w io.Writer, keyword, s string) {
	if !strings.Contains(strings.TrimSuffix(s, "\n"), "\n") {
		fmt.Fprintf(w, "%s \"%s\"\n", keyword, escape(s))
		return
	}
	fmt.Fprintf(w, "%s \"\"\n", keyword)
	for _, line := range strings.SplitAfter(s, "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintf(w, "\"%s\"\n", escape(line))
	}
}

var poEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

func escape(s string) string {
	return poEscaper.Replace(s)
}

// WriteJSON writes the raw records as an indented JSON array.
func WriteJSON(w io.Writer, records []extract.Record) error {
	if records == nil {
		records = []extract.Record{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// WriteTSV writes one row per catalog entry.
func WriteTSV(w io.Writer, c *Catalog) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "msgctxt\tmsgid\tmsgid_plural\tflags\treferences")

	for _, e := range c.Entries {
		refs := make([]string, len(e.References))
		for i, r := range e.References {
			refs[i] = r.String()
		}
		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%s\n",
			escapeTSV(e.Context),
			escapeTSV(e.ID),
			escapeTSV(e.Plural),
			strings.Join(e.Flags, ","),
			strings.Join(refs, " "),
		)
	}
	return bw.Flush()
}

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
