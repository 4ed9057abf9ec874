package validator

// TranslateFunc resolves a translation key with its placeholder values.
type TranslateFunc func(key string, values map[string]any) string

// Translate rewrites messages in place. Entries without a translation key are kept as is.
// A nil fn is a no-op.
func (e ValidationErrors) Translate(fn TranslateFunc) {
	if fn == nil {
		return
	}
	for i := range e {
		if e[i].TranslationKey == "" {
			continue
		}
		e[i].Message = fn(e[i].TranslationKey, e[i].TranslationValues)
	}
}
