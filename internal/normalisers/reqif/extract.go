package reqif

import (
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

	// strayRef matches a leading reference token left in front of rich
	// text by some exporters, e.g. "_a1b2c3 Actual text".
	strayRef = regexp.MustCompile(`^_[^\s]+ `)
)

var errNilValue = errors.New("nil attribute value")

const oleObjectAlt = "OLE Object"

// Extractor turns attribute-value elements into normalised text using
// one document's catalog.
type Extractor struct {
	loc *Locator
	cat *Catalog
}

// NewExtractor creates an extractor bound to a document's catalog.
func NewExtractor(loc *Locator, cat *Catalog) *Extractor {
	return &Extractor{loc: loc, cat: cat}
}

// Extract returns the text of value interpreted as kind. Unresolved
// enumeration references are returned as their raw ids and listed in
// unresolved.
func (x *Extractor) Extract(value *etree.Element, kind domain.AttributeKind) (text string, unresolved []string, err error) {
	if value == nil {
		return "", nil, errNilValue
	}
	switch kind {
	case domain.KindString:
		return x.literal(value), nil, nil
	case domain.KindXHTML:
		return x.xhtml(value), nil, nil
	case domain.KindEnumeration:
		text, unresolved = x.enumeration(value)
		return text, unresolved, nil
	case domain.KindInteger, domain.KindReal, domain.KindDate:
		return x.verbatim(value), nil, nil
	case domain.KindBoolean:
		return booleanLabel(x.verbatim(value)), nil, nil
	default:
		return x.generic(value), nil, nil
	}
}

// literal prefers the THE-VALUE attribute and falls back to flattening
// the THE-VALUE child.
func (x *Extractor) literal(value *etree.Element) string {
	if v, ok := attrValue(value, "THE-VALUE", "the-value"); ok {
		return v
	}
	if holder := x.loc.FindChild(value, "THE-VALUE"); holder != nil {
		return FlattenText(holder)
	}
	return ""
}

func (x *Extractor) xhtml(value *etree.Element) string {
	var text string
	if v, ok := attrValue(value, "THE-VALUE", "the-value"); ok {
		text = normaliseText(v)
	} else if holder := x.loc.FindChild(value, "THE-VALUE"); holder != nil {
		text = FlattenText(holder)
	} else {
		// Without a value holder the whole element is flattened, which
		// picks up the definition reference text as well.
		text = FlattenText(value)
	}
	return strayRef.ReplaceAllString(text, "")
}

func (x *Extractor) enumeration(value *etree.Element) (string, []string) {
	container := x.loc.FindChild(value, "VALUES")
	if container == nil {
		container = value
	}
	var labels, unresolved []string
	for _, ref := range x.loc.Find(container, "ENUM-VALUE-REF") {
		id, ok := attrValue(ref, "REF", "ref")
		if !ok {
			id = ref.Text()
		}
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		label, found := x.cat.EnumLabel(id)
		if !found {
			label = id
			unresolved = append(unresolved, id)
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, ", "), unresolved
}

// verbatim returns the literal source text with no parsing or trimming.
func (x *Extractor) verbatim(value *etree.Element) string {
	if v, ok := attrValue(value, "THE-VALUE", "the-value"); ok {
		return v
	}
	if holder := x.loc.FindChild(value, "THE-VALUE"); holder != nil {
		return holder.Text()
	}
	return ""
}

func (x *Extractor) generic(value *etree.Element) string {
	if v, ok := attrValue(value, "THE-VALUE", "the-value", "VALUE", "value"); ok {
		return v
	}
	if holder := x.loc.FindChild(value, "THE-VALUE"); holder != nil {
		return FlattenText(holder)
	}
	return FlattenText(value)
}

func booleanLabel(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return "Yes"
	case "false", "0", "no":
		return "No"
	default:
		return s
	}
}

// FlattenText concatenates all text below e, including text between
// child elements. Line breaks become spaces, block elements are
// separated, embedded objects contribute their alt text, whitespace runs
// collapse to one space and entities are decoded.
func FlattenText(e *etree.Element) string {
	if e == nil {
		return ""
	}
	var parts []string
	collectText(e, &parts)
	return normaliseText(strings.Join(parts, " "))
}

func collectText(e *etree.Element, parts *[]string) {
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if s := strings.TrimSpace(t.Data); s != "" {
				*parts = append(*parts, s)
			}
		case *etree.Element:
			switch strings.ToLower(t.Tag) {
			case "br":
				*parts = append(*parts, " ")
			case "object":
				if alt := t.SelectAttrValue("alt", ""); alt != "" && alt != oleObjectAlt {
					*parts = append(*parts, alt)
				}
			default:
				collectText(t, parts)
			}
		}
	}
}

func normaliseText(s string) string {
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(html.UnescapeString(s))
}
