package terminology

import (
	"golang.org/x/text/language"
)

// Languages is an ordered language preference set, highest priority first.
// A nil or empty set means "no preference".
type Languages struct {
	tags []language.Tag
}

// ParseLanguages parses an Accept-Language style preference list (e.g.
// "de-CH, de;q=0.9, en;q=0.5") into a Languages set. Unparseable input
// yields an empty set, which behaves as "no preference".
func ParseLanguages(s string) Languages {
	if s == "" {
		return Languages{}
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil {
		return Languages{}
	}
	return Languages{tags: tags}
}

// NewLanguages builds a Languages set from individual BCP-47 tags,
// skipping any that do not parse.
func NewLanguages(tags ...string) Languages {
	var out []language.Tag
	for _, t := range tags {
		tag, err := language.Parse(t)
		if err != nil {
			continue
		}
		out = append(out, tag)
	}
	return Languages{tags: out}
}

// IsEmpty reports whether no preference was expressed.
func (l Languages) IsEmpty() bool {
	return len(l.tags) == 0
}

// IsEnglishOrNothing reports whether the preference set resolves to
// English or expresses no preference at all. Display synthesis from a
// grammar engine's analysis is only permitted in this case.
func (l Languages) IsEnglishOrNothing() bool {
	if len(l.tags) == 0 {
		return true
	}
	for _, t := range l.tags {
		if t == language.Und {
			return true
		}
		if base, _ := t.Base(); base == mustBase("en") {
			return true
		}
	}
	return false
}

// Matches reports whether the given language tag satisfies one of the
// preferred languages, comparing base languages ("de" matches "de-CH").
// An empty preference set matches everything; an empty candidate tag only
// matches an empty preference set.
func (l Languages) Matches(lang string) bool {
	if len(l.tags) == 0 {
		return true
	}
	if lang == "" {
		return false
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	candidate, _ := tag.Base()
	for _, t := range l.tags {
		if t == language.Und {
			return true
		}
		if base, _ := t.Base(); base == candidate {
			return true
		}
	}
	return false
}

// Tags returns the preference tags in priority order.
func (l Languages) Tags() []language.Tag {
	return l.tags
}

func mustBase(s string) language.Base {
	b, err := language.ParseBase(s)
	if err != nil {
		panic(err)
	}
	return b
}
