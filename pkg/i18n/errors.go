package i18n

import "errors"

var (
	ErrNoTranslations       = errors.New("no translations provided")
	ErrInvalidTranslations  = errors.New("invalid translations")
	ErrDefaultLangNotLoaded = errors.New("default language has no translations")
)
