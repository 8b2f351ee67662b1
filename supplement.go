package terminology

import (
	"fmt"

	"github.com/gofhir/fhir/r4"
)

// Supplement carries the language-specific displays and designations a
// CodeSystem supplement registers for codes of another code system.
// Supplements are immutable after construction and safe for concurrent use.
type Supplement struct {
	// URL is the canonical URL of the supplement.
	URL string

	// Version is the supplement version, if any.
	Version string

	// Language is the supplement's default language, applied to concept
	// displays that carry no language of their own.
	Language string

	designations map[string][]Designation
}

// NewSupplement creates an empty supplement with the given identity and
// default language.
func NewSupplement(url, lang string) *Supplement {
	return &Supplement{
		URL:          url,
		Language:     lang,
		designations: make(map[string][]Designation),
	}
}

// AddDesignation registers a designation for a code. An empty language
// falls back to the supplement's default language.
func (s *Supplement) AddDesignation(code string, d Designation) {
	if d.Language == "" {
		d.Language = s.Language
	}
	if d.Use == "" {
		d.Use = UseSynonym
	}
	s.designations[code] = append(s.designations[code], d)
}

// SupplementFromR4 builds a supplement from an R4 CodeSystem resource with
// content mode "supplement". Concept displays become display designations
// in the resource's language; concept designations are carried through.
func SupplementFromR4(cs *r4.CodeSystem) (*Supplement, error) {
	if cs == nil || cs.Url == nil {
		return nil, fmt.Errorf("codesystem is nil or has no URL")
	}

	lang := ""
	if cs.Language != nil {
		lang = *cs.Language
	}
	s := NewSupplement(*cs.Url, lang)
	if cs.Version != nil {
		s.Version = *cs.Version
	}

	for i := range cs.Concept {
		concept := &cs.Concept[i]
		if concept.Code == nil {
			continue
		}
		code := *concept.Code

		if concept.Display != nil && *concept.Display != "" {
			s.AddDesignation(code, Designation{
				Use:   UseDisplay,
				Value: *concept.Display,
			})
		}

		for j := range concept.Designation {
			d := &concept.Designation[j]
			if d.Value == nil || *d.Value == "" {
				continue
			}
			use := UseSynonym
			if d.Use != nil && d.Use.Code != nil && *d.Use.Code == "display" {
				use = UseDisplay
			}
			dLang := ""
			if d.Language != nil {
				dLang = *d.Language
			}
			s.AddDesignation(code, Designation{
				Language: dLang,
				Use:      use,
				Value:    *d.Value,
			})
		}
	}

	return s, nil
}

// HasCode reports whether the supplement registers anything for code.
func (s *Supplement) HasCode(code string) bool {
	_, ok := s.designations[code]
	return ok
}

// Display returns the first display-use designation for code whose
// language satisfies the preference set.
func (s *Supplement) Display(code string, langs Languages) (string, bool) {
	for _, d := range s.designations[code] {
		if d.Use != UseDisplay {
			continue
		}
		if langs.Matches(d.Language) {
			return d.Value, true
		}
	}
	return "", false
}

// Designations returns every designation registered for code, in
// registration order.
func (s *Supplement) Designations(code string) []Designation {
	return s.designations[code]
}
