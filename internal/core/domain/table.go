package domain

// TableRow is one (requirement, attribute) cell of the flat table form of a
// requirement set. A requirement without attributes is written as a single
// row with an empty Attribute.
type TableRow struct {
	ID         string        `yaml:"id"`
	Identifier string        `yaml:"identifier"`
	Type       string        `yaml:"type"`
	Kind       AttributeKind `yaml:"kind"`
	Attribute  string        `yaml:"attribute"`
	Value      string        `yaml:"value"`
}

// TableColumns is the header order of the flat table.
var TableColumns = []string{"id", "identifier", "type", "kind", "attribute", "value"}

// Flatten converts requirements into table rows, attributes sorted by name.
func Flatten(reqs []Requirement) []TableRow {
	rows := make([]TableRow, 0, len(reqs))
	for _, r := range reqs {
		if len(r.Attributes) == 0 {
			rows = append(rows, TableRow{ID: r.ID, Identifier: r.Identifier, Type: r.Type})
			continue
		}
		for _, name := range r.AttributeNames() {
			v := r.Attributes[name]
			rows = append(rows, TableRow{
				ID:         r.ID,
				Identifier: r.Identifier,
				Type:       r.Type,
				Kind:       v.Kind,
				Attribute:  name,
				Value:      v.Text,
			})
		}
	}
	return rows
}

// Unflatten rebuilds requirements from table rows. Requirements appear in
// order of first occurrence.
func Unflatten(rows []TableRow) []Requirement {
	var order []string
	byID := make(map[string]*Requirement)
	for _, row := range rows {
		r, ok := byID[row.ID]
		if !ok {
			r = &Requirement{
				ID:         row.ID,
				Identifier: row.Identifier,
				Type:       row.Type,
				Attributes: make(map[string]AttributeValue),
			}
			byID[row.ID] = r
			order = append(order, row.ID)
		}
		if row.Attribute == "" {
			continue
		}
		r.Attributes[row.Attribute] = AttributeValue{Kind: row.Kind, Text: row.Value}
	}

	reqs := make([]Requirement, 0, len(order))
	for _, id := range order {
		reqs = append(reqs, *byID[id])
	}
	return reqs
}
