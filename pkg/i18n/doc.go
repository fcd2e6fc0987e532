// Package i18n translates validation messages.
//
// A Translator holds message templates per language, keyed by the
// TranslationKey carried by each failed check. Localize rewrites the messages
// of a whole result tree, filling "%{name}" placeholders from the failure
// params:
//
//	tr, err := i18n.Load(ctx, "messages.yaml")
//	if err != nil {
//		return err
//	}
//	lang := tr.Negotiate(r.Header.Get("Accept-Language"))
//	tr.Localize(res, lang)
package i18n
