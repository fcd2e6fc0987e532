package i18n

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Negotiate picks a loaded language for an Accept-Language header. Exact
// matches win over base language matches ("cs-CZ" falls back to "cs") so the
// client's quality ordering is respected. Unparsable or unmatched headers
// yield the default language.
func (t *Translator) Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return t.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.defaultLang
	}

	for _, tag := range tags {
		if lang := strings.ToLower(tag.String()); slices.Contains(t.langs, lang) {
			return lang
		}
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		if lang := base.String(); slices.Contains(t.langs, lang) {
			return lang
		}
	}
	return t.defaultLang
}
