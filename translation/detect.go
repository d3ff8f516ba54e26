package translation

import (
	"github.com/abadojack/whatlanggo"
)

// DetectTag guesses the language of a text and returns its short tag,
// or fallback when detection yields a language outside the supported table.
// Used when a member record carries no stored language preference.
func DetectTag(text, fallback string) string {
	info := whatlanggo.Detect(text)
	tag := info.Lang.Iso6391()
	if tag == "" || !IsSupported(tag) {
		return fallback
	}
	return tag
}
