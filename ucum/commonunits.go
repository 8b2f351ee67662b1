package ucum

import (
	"fmt"

	"github.com/gofhir/fhir/r4"
)

// CommonUnit is one entry of the finite allow-list layered over the
// unbounded UCUM code space. Canonical is precomputed by the factory; it
// is empty when the engine could not canonicalize the code.
type CommonUnit struct {
	Code      string
	Display   string
	Canonical string
}

// CommonUnitsFromValueSet extracts a common-units enumeration from an R4
// ValueSet. Codes come from the expansion when present, otherwise from
// compose include concepts; only entries for the UCUM system (or with no
// system at all) are taken. Order follows the resource.
func CommonUnitsFromValueSet(vs *r4.ValueSet) ([]CommonUnit, error) {
	if vs == nil || vs.Url == nil {
		return nil, fmt.Errorf("valueset is nil or has no URL")
	}

	var units []CommonUnit

	if vs.Expansion != nil {
		for i := range vs.Expansion.Contains {
			collectExpansionUnits(&vs.Expansion.Contains[i], &units)
		}
		return units, nil
	}

	if vs.Compose != nil {
		for i := range vs.Compose.Include {
			include := &vs.Compose.Include[i]
			if include.System != nil && *include.System != SystemURI {
				continue
			}
			for j := range include.Concept {
				concept := &include.Concept[j]
				if concept.Code == nil {
					continue
				}
				display := ""
				if concept.Display != nil {
					display = *concept.Display
				}
				units = append(units, CommonUnit{Code: *concept.Code, Display: display})
			}
		}
	}

	return units, nil
}

func collectExpansionUnits(contains *r4.ValueSetExpansionContains, units *[]CommonUnit) {
	if contains.Code != nil && (contains.System == nil || *contains.System == SystemURI) {
		display := ""
		if contains.Display != nil {
			display = *contains.Display
		}
		*units = append(*units, CommonUnit{Code: *contains.Code, Display: display})
	}
	for i := range contains.Contains {
		collectExpansionUnits(&contains.Contains[i], units)
	}
}

// EnumerationID identifies a common-units enumeration for factory cache
// keys: the ValueSet's canonical URL, version-qualified when versioned.
func EnumerationID(vs *r4.ValueSet) string {
	if vs == nil || vs.Url == nil {
		return ""
	}
	id := *vs.Url
	if vs.Version != nil && *vs.Version != "" {
		id += "|" + *vs.Version
	}
	return id
}
