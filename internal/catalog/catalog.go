// Package catalog merges extraction records into gettext message catalogs
// and writes them as POT, JSON or TSV.
package catalog

import (
	"fmt"
	"slices"
	"sort"

	"gettext-extractor/internal/extract"
	"gettext-extractor/internal/gettext"
	"gettext-extractor/internal/interpolation"

	"github.com/rs/zerolog/log"
)

// Reference is a source location of a message.
type Reference struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

func (r Reference) String() string {
	return fmt.Sprintf("%s:%d", r.File, r.Line)
}

// Entry is one unique message of a catalog.
type Entry struct {
	Context    string      `json:"msgctxt,omitempty"`
	ID         string      `json:"msgid"`
	Plural     string      `json:"msgid_plural,omitempty"`
	Flags      []string    `json:"flags,omitempty"`
	References []Reference `json:"references"`
}

type key struct {
	ctx, id string
}

// Catalog holds the unique messages of one domain in first-seen order.
type Catalog struct {
	Domain  string
	Entries []*Entry

	index map[key]*Entry
}

// New creates an empty catalog for domain.
func New(domain string) *Catalog {
	return &Catalog{Domain: domain, index: make(map[key]*Entry)}
}

// Build collects the records that belong to domain. Records without a domain
// belong to every catalog; records naming another domain are skipped.
func Build(domain string, records []extract.Record) *Catalog {
	c := New(domain)
	for _, r := range records {
		if d := r.Get(gettext.KeyDomain); d != "" && d != domain {
			continue
		}
		c.Add(r)
	}
	return c
}

// Domains returns the distinct explicit domains named by records, sorted.
func Domains(records []extract.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if d := r.Get(gettext.KeyDomain); d != "" && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// Add merges one record. Records without a msgid are ignored.
func (c *Catalog) Add(r extract.Record) {
	id := r.Get(gettext.KeyMsgID)
	if id == "" {
		log.Warn().Str("file", r.Filename).Int("line", r.Line).Msg("Record has no msgid, skipping")
		return
	}

	k := key{ctx: r.Get(gettext.KeyMsgCtxt), id: id}
	e, ok := c.index[k]
	if !ok {
		e = &Entry{Context: k.ctx, ID: id}
		c.index[k] = e
		c.Entries = append(c.Entries, e)
	}

	if plural := r.Get(gettext.KeyMsgIDPlural); plural != "" && e.Plural == "" {
		e.Plural = plural
	}
	e.Flags = mergeFlags(e.Flags, interpolation.Flags(id))
	if e.Plural != "" {
		e.Flags = mergeFlags(e.Flags, interpolation.Flags(e.Plural))
	}

	ref := Reference{File: r.Filename, Line: r.Line}
	for _, existing := range e.References {
		if existing == ref {
			return
		}
	}
	e.References = append(e.References, ref)
}

// Len returns the number of unique messages.
func (c *Catalog) Len() int {
	return len(c.Entries)
}

func mergeFlags(have, add []string) []string {
	for _, f := range add {
		if !slices.Contains(have, f) {
			have = append(have, f)
		}
	}
	return have
}
