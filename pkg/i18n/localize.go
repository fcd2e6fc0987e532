package i18n

import (
	"github.com/dmitrymomot/formkit/pkg/result"
)

// Localize rewrites the Message of every failed check in res using its
// TranslationKey and Params. Failures without a translation keep their
// message.
func (t *Translator) Localize(res *result.Result, lang string) {
	if res == nil || !res.HasErrors {
		return
	}
	for check, f := range res.ValidationFailures {
		if !f.HasError || f.TranslationKey == "" {
			continue
		}
		if msg, ok := t.T(lang, f.TranslationKey, f.Params); ok {
			f.Message = msg
			res.ValidationFailures[check] = f
		}
	}
	for _, child := range res.Errors {
		t.Localize(child, lang)
	}
	for _, item := range res.Children {
		t.Localize(item, lang)
	}
}
