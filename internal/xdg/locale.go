package xdg

import (
	"os"
	"strings"
)

// EnglishTag is the language tag for which localized names equal the
// untranslated Name= value.
const EnglishTag = "[en]"

// DefaultLocale is assumed when the process locale cannot be determined.
const DefaultLocale = "en_US"

// localeEnv lists the variables consulted for the message locale, in POSIX
// precedence order.
var localeEnv = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// LocaleTag returns the bracketed language tag (e.g. "[de]") used to match
// localized desktop-entry keys such as Name[de]=.
//
// A non-empty forced value (e.g. "pl_PL") overrides the process locale.
// The second return value is false when no tag could be derived; callers
// should then skip localization entirely.
func LocaleTag(forced string) (string, bool) {
	language := forced
	if language == "" {
		language = processLocale()
	}
	return tagFor(language)
}

// tagFor converts a locale string into a bracketed two-letter tag.
func tagFor(language string) (string, bool) {
	lang, _, _ := strings.Cut(language, "_")
	if lang == "" {
		return "", false
	}
	return "[" + lang + "]", true
}

// processLocale reads the message locale from the environment.
func processLocale() string {
	for _, key := range localeEnv {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" || strings.HasPrefix(v, "C.") {
			continue
		}
		return v
	}
	return DefaultLocale
}
