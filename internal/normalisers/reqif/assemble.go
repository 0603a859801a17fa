package reqif

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// Assembler builds requirement records from SPEC-OBJECT elements.
type Assembler struct {
	loc *Locator
	cat *Catalog
	ext *Extractor
}

// NewAssembler creates an assembler for one document.
func NewAssembler(loc *Locator, cat *Catalog) *Assembler {
	return &Assembler{loc: loc, cat: cat, ext: NewExtractor(loc, cat)}
}

// PlaceholderID returns the id given to the spec object at index when it
// has no identifier of its own.
func PlaceholderID(index int) string {
	return fmt.Sprintf("REQ_%d", index)
}

// Assemble builds the requirement for obj, the index-th spec object in the
// document. It never fails: problems with individual values are returned
// as issues and the rest of the requirement is still assembled.
func (a *Assembler) Assemble(obj *etree.Element, index int) (domain.Requirement, []string) {
	var issues []string
	req := domain.Requirement{Attributes: make(map[string]domain.AttributeValue)}

	if id, ok := attrValue(obj, identifierAttrs...); ok && strings.TrimSpace(id) != "" {
		req.ID = strings.TrimSpace(id)
		req.Identifier = req.ID
	} else {
		req.ID = PlaceholderID(index)
		issues = append(issues, fmt.Sprintf("spec object %d has no identifier, using %s", index, req.ID))
	}

	if ref := a.typeRef(obj); ref != "" {
		name, ok := a.cat.TypeName(ref)
		if !ok {
			issues = append(issues, fmt.Sprintf("%s: spec object type %s not found", req.ID, ref))
		}
		req.Type = name
	}

	for _, v := range a.values(obj) {
		kind := kindFromTag(v.Tag)
		ref := a.definitionRef(v, kind)
		if ref == "" {
			issues = append(issues, fmt.Sprintf("%s: %s without definition reference", req.ID, v.Tag))
			continue
		}
		name, ok := a.cat.AttributeName(ref)
		if !ok {
			issues = append(issues, fmt.Sprintf("%s: attribute definition %s not found", req.ID, ref))
		}
		if kind == domain.KindUnknown {
			if def, found := a.cat.Attributes[ref]; found {
				kind = def.Kind
			}
		}

		text, unresolved, err := a.ext.Extract(v, kind)
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s: %s: %v", req.ID, name, err))
			continue
		}
		for _, id := range unresolved {
			issues = append(issues, fmt.Sprintf("%s: %s: enumeration value %s not found", req.ID, name, id))
		}
		if text == "" {
			continue
		}
		if _, dup := req.Attributes[name]; dup {
			issues = append(issues, fmt.Sprintf("%s: attribute %q set more than once", req.ID, name))
		}
		req.Attributes[name] = domain.AttributeValue{Kind: kind, Text: text}
	}

	return req, issues
}

// typeRef reads TYPE/SPEC-OBJECT-TYPE-REF as text or REF attribute.
func (a *Assembler) typeRef(obj *etree.Element) string {
	typ := directChild(obj, "TYPE")
	if typ == nil {
		return ""
	}
	ref := a.loc.FindChild(typ, "SPEC-OBJECT-TYPE-REF")
	if ref == nil {
		return ""
	}
	if v, ok := attrValue(ref, "REF", "ref"); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(ref.Text())
}

// values returns the attribute-value elements of obj. The VALUES
// container is preferred; without it every ATTRIBUTE-VALUE-<KIND>
// descendant is used.
func (a *Assembler) values(obj *etree.Element) []*etree.Element {
	container := directChild(obj, "VALUES")
	if container == nil {
		container = a.loc.FindChild(obj, "VALUES")
	}
	if container != nil {
		var out []*etree.Element
		for _, c := range container.ChildElements() {
			if strings.HasPrefix(strings.ToUpper(c.Tag), valuePrefix) {
				out = append(out, c)
			}
		}
		return out
	}

	var out []*etree.Element
	for _, kind := range domain.AllAttributeKinds() {
		out = append(out, a.loc.Find(obj, valuePrefix+kindTags[kind])...)
	}
	return out
}

// definitionRef resolves the definition a value belongs to: first a
// direct attribute, then a DEFINITION child holding one of the per-kind
// reference elements. The value's own kind is tried first.
func (a *Assembler) definitionRef(v *etree.Element, kind domain.AttributeKind) string {
	if ref, ok := attrValue(v, "ATTRIBUTE-DEFINITION-REF", "attribute-definition-ref", "DEFINITION-REF"); ok {
		if ref = strings.TrimSpace(ref); ref != "" {
			return ref
		}
	}

	holder := directChild(v, "DEFINITION")
	if holder == nil {
		holder = v
	}
	kinds := domain.AllAttributeKinds()
	if kind != domain.KindUnknown {
		kinds = append([]domain.AttributeKind{kind}, kinds...)
	}
	for _, k := range kinds {
		if ref := a.loc.FindChild(holder, definitionRefTag(k)); ref != nil {
			if text := strings.TrimSpace(ref.Text()); text != "" {
				return text
			}
			if attr, ok := attrValue(ref, "REF", "ref"); ok && strings.TrimSpace(attr) != "" {
				return strings.TrimSpace(attr)
			}
		}
	}
	return ""
}

// directChild returns the first child element whose local tag equals name,
// ignoring case and prefix.
func directChild(e *etree.Element, name string) *etree.Element {
	for _, c := range e.ChildElements() {
		if strings.EqualFold(c.Tag, name) {
			return c
		}
	}
	return nil
}
