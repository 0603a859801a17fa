package reqif

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/logger"
)

// Attribute spellings tried in order when reading identifiers and names.
var (
	identifierAttrs = []string{"IDENTIFIER", "identifier", "ID", "id"}
	longNameAttrs   = []string{"LONG-NAME", "long-name", "NAME", "name"}
)

// kindTags maps each attribute kind to its tag-family suffix.
var kindTags = map[domain.AttributeKind]string{
	domain.KindString:      "STRING",
	domain.KindXHTML:       "XHTML",
	domain.KindEnumeration: "ENUMERATION",
	domain.KindInteger:     "INTEGER",
	domain.KindReal:        "REAL",
	domain.KindDate:        "DATE",
	domain.KindBoolean:     "BOOLEAN",
}

const (
	definitionPrefix = "ATTRIBUTE-DEFINITION-"
	valuePrefix      = "ATTRIBUTE-VALUE-"
)

func definitionTag(kind domain.AttributeKind) string {
	return definitionPrefix + kindTags[kind]
}

func definitionRefTag(kind domain.AttributeKind) string {
	return definitionTag(kind) + "-REF"
}

// kindFromTag returns the kind named by an ATTRIBUTE-VALUE-<KIND> or
// ATTRIBUTE-DEFINITION-<KIND> tag.
func kindFromTag(tag string) domain.AttributeKind {
	upper := strings.ToUpper(tag)
	suffix := strings.TrimPrefix(strings.TrimPrefix(upper, valuePrefix), definitionPrefix)
	suffix = strings.TrimSuffix(suffix, "-REF")
	for kind, t := range kindTags {
		if t == suffix {
			return kind
		}
	}
	return domain.KindUnknown
}

// Catalog holds the lookup tables for one document. It is read-only once
// built and must not be shared across documents.
type Catalog struct {
	Attributes map[string]domain.AttributeDefinition
	Types      map[string]domain.SpecObjectType
	Enums      map[string]domain.EnumerationDefinition

	// EnumValues is a flat enumeration value id to label table.
	EnumValues map[string]string

	// Counts is the number of attribute definitions per kind.
	Counts map[domain.AttributeKind]int

	// Skipped counts definitions dropped for lack of an identifier.
	Skipped int
}

// AttributeName returns the human name for a definition reference, or the
// reference itself when it is not in the catalog.
func (c *Catalog) AttributeName(ref string) (string, bool) {
	if def, ok := c.Attributes[ref]; ok {
		return def.Name, true
	}
	return ref, false
}

// TypeName returns the human name for a spec-object type reference, or
// the reference itself when it is not in the catalog.
func (c *Catalog) TypeName(ref string) (string, bool) {
	if t, ok := c.Types[ref]; ok {
		return t.Name, true
	}
	return ref, false
}

// EnumLabel resolves an enumeration value id to its label.
func (c *Catalog) EnumLabel(id string) (string, bool) {
	label, ok := c.EnumValues[id]
	return label, ok
}

// BuildCatalog scans the document once and indexes its definitions.
// Definitions without an identifier are skipped and reported to diag.
func BuildCatalog(root *etree.Element, loc *Locator, diag *domain.Diagnostics) *Catalog {
	c := &Catalog{
		Attributes: make(map[string]domain.AttributeDefinition),
		Types:      make(map[string]domain.SpecObjectType),
		Enums:      make(map[string]domain.EnumerationDefinition),
		EnumValues: make(map[string]string),
		Counts:     make(map[domain.AttributeKind]int),
	}
	if root == nil {
		return c
	}

	for _, kind := range domain.AllAttributeKinds() {
		tag := definitionTag(kind)
		for _, el := range loc.Find(root, tag) {
			id, name, ok := c.identify(el, tag, diag)
			if !ok {
				continue
			}
			c.Attributes[id] = domain.AttributeDefinition{Identifier: id, Name: name, Kind: kind}
			c.Counts[kind]++
		}
	}

	for _, el := range loc.Find(root, "SPEC-OBJECT-TYPE") {
		id, name, ok := c.identify(el, "SPEC-OBJECT-TYPE", diag)
		if !ok {
			continue
		}
		c.Types[id] = domain.SpecObjectType{Identifier: id, Name: name}
	}

	enums := loc.Find(root, "DATATYPE-DEFINITION-ENUMERATION")
	if len(enums) == 0 {
		enums = loc.Find(root, "ENUM-DEFINITION")
	}
	for _, el := range enums {
		id, name, ok := c.identify(el, "DATATYPE-DEFINITION-ENUMERATION", diag)
		if !ok {
			continue
		}
		def := domain.EnumerationDefinition{Identifier: id, Name: name, Values: make(map[string]string)}
		for _, v := range loc.Find(el, "ENUM-VALUE") {
			vid, label, ok := c.identify(v, "ENUM-VALUE", diag)
			if !ok {
				continue
			}
			if label == vid {
				label = embeddedLabel(loc, v, vid)
			}
			def.Values[vid] = label
			c.EnumValues[vid] = label
		}
		c.Enums[id] = def
	}

	// Some exporters emit enumeration values outside any datatype block.
	if len(c.Enums) == 0 {
		for _, v := range loc.Find(root, "ENUM-VALUE") {
			if vid, ok := attrValue(v, identifierAttrs...); ok && vid != "" {
				label, _ := longName(v)
				if label == "" {
					label = embeddedLabel(loc, v, vid)
				}
				c.EnumValues[vid] = label
			}
		}
	}

	logger.Debug("catalog: %d attribute definitions, %d types, %d enumerations, %d enum values",
		len(c.Attributes), len(c.Types), len(c.Enums), len(c.EnumValues))
	return c
}

// identify reads an element's identifier and long name. The name falls
// back to the identifier.
func (c *Catalog) identify(el *etree.Element, what string, diag *domain.Diagnostics) (string, string, bool) {
	id, ok := attrValue(el, identifierAttrs...)
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		c.Skipped++
		logger.Debug("skipping %s without identifier", what)
		if diag != nil {
			diag.AddIssue("%s without identifier skipped", what)
		}
		return "", "", false
	}
	name, _ := longName(el)
	if name == "" {
		name = id
	}
	return id, name, true
}

func longName(el *etree.Element) (string, bool) {
	name, ok := attrValue(el, longNameAttrs...)
	return strings.TrimSpace(name), ok
}

// embeddedLabel reads EMBEDDED-VALUE/OTHER-CONTENT as a fallback label.
func embeddedLabel(loc *Locator, v *etree.Element, fallback string) string {
	embedded := loc.FindChild(v, "EMBEDDED-VALUE")
	if embedded == nil {
		return fallback
	}
	if other, ok := attrValue(embedded, "OTHER-CONTENT"); ok && strings.TrimSpace(other) != "" {
		return strings.TrimSpace(other)
	}
	return fallback
}
