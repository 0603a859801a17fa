package reqif

import (
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// Locator finds descendant elements by tag name while tolerating
// inconsistent namespace usage. Each lookup tries, in order:
//
//  1. local name in the namespace declared on the document root
//  2. prefix-qualified path for every xmlns prefix declared on the root
//  3. suffix match on the full tag (any or no prefix)
//  4. case-insensitive local name
//
// and returns the first non-empty result.
type Locator struct {
	nsURI    string
	prefixes []string
}

// NewLocator creates a locator for the tree under root.
func NewLocator(root *etree.Element) *Locator {
	l := &Locator{}
	if root == nil {
		return l
	}
	l.nsURI = root.NamespaceURI()
	for _, a := range root.Attr {
		if a.Space == "xmlns" && a.Key != "" {
			l.prefixes = append(l.prefixes, a.Key)
		}
	}
	sort.Strings(l.prefixes)
	return l
}

// Namespace returns the root namespace URI, empty when none is declared.
func (l *Locator) Namespace() string {
	return l.nsURI
}

// Find returns all descendants of root named name, in document order.
// It never fails; a miss is an empty slice.
func (l *Locator) Find(root *etree.Element, name string) []*etree.Element {
	if root == nil || name == "" {
		return nil
	}
	if found := l.byNamespace(root, name); len(found) > 0 {
		return found
	}
	if found := l.byPrefix(root, name); len(found) > 0 {
		return found
	}
	if found := l.bySuffix(root, name); len(found) > 0 {
		return found
	}
	return l.byFold(root, name)
}

// FindChild returns the first descendant of root named name, or nil.
func (l *Locator) FindChild(root *etree.Element, name string) *etree.Element {
	found := l.Find(root, name)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// FindAny returns the first descendant matching any of names, trying the
// names in order.
func (l *Locator) FindAny(root *etree.Element, names ...string) *etree.Element {
	for _, name := range names {
		if e := l.FindChild(root, name); e != nil {
			return e
		}
	}
	return nil
}

func (l *Locator) byNamespace(root *etree.Element, name string) []*etree.Element {
	return descendants(root, func(e *etree.Element) bool {
		return e.Tag == name && e.NamespaceURI() == l.nsURI
	})
}

func (l *Locator) byPrefix(root *etree.Element, name string) []*etree.Element {
	for _, p := range l.prefixes {
		if found := root.FindElements(".//" + p + ":" + name); len(found) > 0 {
			return found
		}
	}
	return nil
}

// bySuffix matches tags ending in name at a boundary, so "SPEC-OBJECT"
// matches "x:SPEC-OBJECT" but neither "SPEC-OBJECT-TYPE" nor "MYSPEC-OBJECT".
func (l *Locator) bySuffix(root *etree.Element, name string) []*etree.Element {
	return descendants(root, func(e *etree.Element) bool {
		full := e.FullTag()
		if !strings.HasSuffix(full, name) {
			return false
		}
		if len(full) == len(name) {
			return true
		}
		return !isNameChar(full[len(full)-len(name)-1])
	})
}

func (l *Locator) byFold(root *etree.Element, name string) []*etree.Element {
	return descendants(root, func(e *etree.Element) bool {
		return strings.EqualFold(e.Tag, name)
	})
}

func isNameChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// descendants walks the subtree below root in document order.
func descendants(root *etree.Element, match func(*etree.Element) bool) []*etree.Element {
	var out []*etree.Element
	var visit func(e *etree.Element)
	visit = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if match(c) {
				out = append(out, c)
			}
			visit(c)
		}
	}
	visit(root)
	return out
}

// attrValue returns the first present attribute among names.
func attrValue(e *etree.Element, names ...string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, name := range names {
		if a := e.SelectAttr(name); a != nil {
			return a.Value, true
		}
	}
	return "", false
}

// countElements returns the number of elements in the tree, root included.
func countElements(root *etree.Element) int {
	if root == nil {
		return 0
	}
	return 1 + len(descendants(root, func(*etree.Element) bool { return true }))
}
