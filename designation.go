package terminology

// DesignationUse classifies a designation, aligned with the FHIR
// designation-use codes.
type DesignationUse string

// Designation uses.
const (
	UseDisplay DesignationUse = "display"
	UseSynonym DesignationUse = "synonym"
)

// Designation is an alternate textual rendering of a code, tagged with
// language and use.
type Designation struct {
	// Language is a BCP-47 language tag, empty when unspecified.
	Language string

	// Use classifies the designation.
	Use DesignationUse

	// Value is the designation text.
	Value string
}

// DesignationSink receives designations emitted by Provider.Designations.
type DesignationSink interface {
	Add(d Designation)
}

// DesignationList is a slice-backed DesignationSink.
type DesignationList struct {
	items []Designation
}

// Add implements DesignationSink.
func (l *DesignationList) Add(d Designation) {
	l.items = append(l.items, d)
}

// Items returns the collected designations in emission order.
func (l *DesignationList) Items() []Designation {
	return l.items
}

// Len returns the number of collected designations.
func (l *DesignationList) Len() int {
	return len(l.items)
}
