package preview

import (
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	English  Lang = "en"
	Japanese Lang = "ja"
)

var Langs = []Lang{English, Japanese}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Japanese})

// ParseLang accepts "en", "ja" or any BCP 47 tag and falls back to English.
func ParseLang(s string) Lang {
	s = strings.TrimSpace(s)
	if s == "" {
		return English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return English
	}
	return fromTag(tag)
}

// MatchLang picks the best supported language for an Accept-Language header.
// ok is false when the header is empty or names nothing we support.
func MatchLang(acceptLanguage string) (lang Lang, ok bool) {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English, false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English, false
	}
	if idx == 1 {
		return Japanese, true
	}
	return English, true
}

func fromTag(tag language.Tag) Lang {
	base, _ := tag.Base()
	if base.String() == "ja" {
		return Japanese
	}
	return English
}
