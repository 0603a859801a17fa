package domain

import "sort"

// AttributeKind is the declared datatype family of an attribute definition.
type AttributeKind string

// Recognised attribute kinds. Each maps to an ATTRIBUTE-DEFINITION-<KIND>
// element family in the source document.
const (
	KindString      AttributeKind = "string"
	KindXHTML       AttributeKind = "xhtml"
	KindEnumeration AttributeKind = "enumeration"
	KindInteger     AttributeKind = "integer"
	KindReal        AttributeKind = "real"
	KindDate        AttributeKind = "date"
	KindBoolean     AttributeKind = "boolean"

	// KindUnknown is used when a value's definition could not be resolved.
	KindUnknown AttributeKind = "unknown"
)

// AllAttributeKinds returns every concrete kind in document order.
func AllAttributeKinds() []AttributeKind {
	return []AttributeKind{
		KindString,
		KindXHTML,
		KindEnumeration,
		KindInteger,
		KindReal,
		KindDate,
		KindBoolean,
	}
}

// IsValid returns true if the kind is recognised.
func (k AttributeKind) IsValid() bool {
	switch k {
	case KindString, KindXHTML, KindEnumeration, KindInteger,
		KindReal, KindDate, KindBoolean, KindUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k AttributeKind) String() string {
	return string(k)
}

// AttributeValue is one extracted attribute value. Kind records which
// extraction variant produced Text; equality between requirements only
// considers Text.
type AttributeValue struct {
	Kind AttributeKind `yaml:"kind" json:"kind"`
	Text string        `yaml:"text" json:"text"`
}

// Requirement is the canonical record for one requirement object.
// Attributes keys come only from the document's attribute definitions
// (or the raw definition reference when unresolved).
type Requirement struct {
	// ID is the document-native identifier, or a positional placeholder.
	ID string `yaml:"id" json:"id"`

	// Identifier is the native IDENTIFIER attribute; empty when ID was synthesised.
	Identifier string `yaml:"identifier,omitempty" json:"identifier,omitempty"`

	// Type is the resolved spec-object type name or the raw reference.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`

	// Attributes maps attribute names to extracted values.
	Attributes map[string]AttributeValue `yaml:"attributes" json:"attributes"`
}

// Value returns the text of the named attribute and whether it exists.
func (r Requirement) Value(name string) (string, bool) {
	v, ok := r.Attributes[name]
	return v.Text, ok
}

// AttributeNames returns the attribute keys in sorted order.
func (r Requirement) AttributeNames() []string {
	names := make([]string, 0, len(r.Attributes))
	for k := range r.Attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether two requirements have the same type and the same
// set of (attribute name, text) pairs.
func (r Requirement) Equal(other Requirement) bool {
	if r.Type != other.Type || len(r.Attributes) != len(other.Attributes) {
		return false
	}
	for k, v := range r.Attributes {
		ov, ok := other.Attributes[k]
		if !ok || ov.Text != v.Text {
			return false
		}
	}
	return true
}

// AttributeDefinition is a catalog entry for a declared attribute.
type AttributeDefinition struct {
	Identifier string
	Name       string
	Kind       AttributeKind
}

// SpecObjectType is a catalog entry for a requirement classification.
type SpecObjectType struct {
	Identifier string
	Name       string
}

// EnumerationDefinition is a catalog entry for an enumeration datatype.
type EnumerationDefinition struct {
	Identifier string
	Name       string

	// Values maps enumeration value ids to their labels.
	Values map[string]string
}
