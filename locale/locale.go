// Package locale resolves the console message tables for a configured language.
//
// A table is a YAML file named after its BCP 47 tag, e.g. "es.yaml", mapping every Key to a printf template.
// The English table is the default one and must define every key. Other tables may be partial: a missing key falls
// back to the English template.
package locale

import (
	"embed"
	"errors"
	"fmt"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

type Key string

const (
	KeyFetching      Key = "fetching"
	KeyFound         Key = "found"
	KeyWouldDelete   Key = "would_delete"
	KeyExcerpt       Key = "excerpt"
	KeyDeleted       Key = "deleted"
	KeyDeleteFailed  Key = "delete_failed"
	KeySummaryDryRun Key = "summary_dry_run"
	KeySummary       Key = "summary"
	KeyFatal         Key = "fatal"
)

var Keys = []Key{
	KeyFetching,
	KeyFound,
	KeyWouldDelete,
	KeyExcerpt,
	KeyDeleted,
	KeyDeleteFailed,
	KeySummaryDryRun,
	KeySummary,
	KeyFatal,
}

type Table map[Key]string

var LanguageDefault = language.English

var ErrInvalidTable = errors.New("invalid message table")

//go:embed locales/*.yaml
var embedded embed.FS

const cacheSize = 16
const ext = ".yaml"

type Catalog struct {
	src     fs.FS
	tags    []language.Tag
	matcher language.Matcher
	def     Table
	cache   *lru.Cache[string, Table]
}

// NewCatalog uses the tables from dir, or the built in ones when dir is empty.
func NewCatalog(dir string) (c *Catalog, err error) {
	var src fs.FS
	switch dir {
	case "":
		src, err = fs.Sub(embedded, "locales")
	default:
		src = os.DirFS(dir)
	}
	if err == nil {
		c, err = NewCatalogFromFS(src)
	}
	return
}

func NewCatalogFromFS(src fs.FS) (c *Catalog, err error) {
	c = &Catalog{
		src: src,
	}
	c.cache, err = lru.New[string, Table](cacheSize)
	var names []string
	if err == nil {
		names, err = fs.Glob(src, "*"+ext)
	}
	if err == nil {
		sort.Strings(names)
		c.tags = []language.Tag{LanguageDefault}
		for _, name := range names {
			tag, errTag := language.Parse(strings.TrimSuffix(name, ext))
			if errTag == nil && tag.String() != LanguageDefault.String() {
				c.tags = append(c.tags, tag)
			}
		}
		c.matcher = language.NewMatcher(c.tags)
		c.def, err = c.table(LanguageDefault)
	}
	if err == nil {
		for _, k := range Keys {
			if _, ok := c.def[k]; !ok {
				err = errors.Join(err, fmt.Errorf("%w: default language %s misses the key %q", ErrInvalidTable, LanguageDefault, k))
			}
		}
	}
	if err != nil {
		c = nil
	}
	return
}

// Messages returns the messages for the closest supported match of lang. Unknown or malformed lang selects the
// default language.
func (c *Catalog) Messages(lang string) (msgs Messages, err error) {
	tag := LanguageDefault
	requested, errParse := language.Parse(lang)
	if errParse == nil {
		_, i, confidence := c.matcher.Match(requested)
		if confidence != language.No {
			tag = c.tags[i]
		}
	}
	msgs.tag = tag
	msgs.def = c.def
	msgs.table, err = c.table(tag)
	msgs.printer = message.NewPrinter(tag)
	return
}

func (c *Catalog) table(tag language.Tag) (t Table, err error) {
	k := tag.String()
	var found bool
	t, found = c.cache.Get(k)
	if !found {
		var data []byte
		data, err = fs.ReadFile(c.src, path.Clean(k+ext))
		if err == nil {
			err = yaml.Unmarshal(data, &t)
		}
		switch err {
		case nil:
			c.cache.Add(k, t)
		default:
			err = fmt.Errorf("%w: %s%s: %s", ErrInvalidTable, k, ext, err)
		}
	}
	return
}

type Messages struct {
	tag     language.Tag
	table   Table
	def     Table
	printer *message.Printer
}

func (m Messages) Language() language.Tag {
	return m.tag
}

// Format renders the template for the key, falling back to the default language template when the selected table
// misses it.
func (m Messages) Format(key Key, args ...any) string {
	tmpl, found := m.table[key]
	if !found {
		tmpl = m.def[key]
	}
	return m.printer.Sprintf(tmpl, args...)
}
