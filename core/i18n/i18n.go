// Package i18n looks up interface strings in the active language.
package i18n

import (
	"encoding/json"
	"io/fs"
	"path"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ne"
	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core/preference"
)

// locales maps app languages to CLDR locales.
var locales = map[preference.Language]string{
	preference.English: "en",
	preference.Nepali:  "ne",
}

// Dictionary holds the translation tables of every supported language.
type Dictionary struct {
	uni    *ut.UniversalTranslator
	tables map[preference.Language]map[string]string
}

// Load reads "<dir>/<lang>.json" for every supported language from fsys.
func Load(fsys fs.FS, dir string) (*Dictionary, error) {
	d := &Dictionary{
		uni:    ut.New(en.New(), en.New(), ne.New()),
		tables: make(map[preference.Language]map[string]string, len(locales)),
	}
	for _, lang := range preference.Languages {
		data, err := fs.ReadFile(fsys, path.Join(dir, string(lang)+".json"))
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s dictionary", lang)
		}
		table := make(map[string]string)
		if err = json.Unmarshal(data, &table); err != nil {
			return nil, errors.Wrapf(err, "decoding %s dictionary", lang)
		}
		if err = d.add(lang, table); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dictionary) add(lang preference.Language, table map[string]string) error {
	trans, _ := d.uni.GetTranslator(locales[lang])
	for key, text := range table {
		if err := trans.Add(key, text, true); err != nil {
			return errors.Wrapf(err, "adding %s translation %q", lang, key)
		}
	}
	d.tables[lang] = table
	return nil
}

// T returns the translation of key in lang, or key itself when there is none.
// An unsupported language behaves like a missing key.
func (d *Dictionary) T(lang preference.Language, key string) string {
	locale, ok := locales[lang]
	if !ok {
		return key
	}
	trans, found := d.uni.GetTranslator(locale)
	if !found {
		return key
	}
	text, err := trans.T(key)
	if err != nil || text == "" {
		return key
	}
	return text
}

// Messages returns a copy of the table of lang.
func (d *Dictionary) Messages(lang preference.Language) (map[string]string, bool) {
	table, ok := d.tables[lang]
	if !ok {
		return nil, false
	}
	cp := make(map[string]string, len(table))
	for k, v := range table {
		cp[k] = v
	}
	return cp, true
}
