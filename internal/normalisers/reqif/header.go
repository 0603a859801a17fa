package reqif

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// readHeader extracts REQ-IF-HEADER metadata. Missing fields stay empty.
func readHeader(root *etree.Element, loc *Locator) domain.Header {
	var h domain.Header
	header := loc.FindChild(root, "REQ-IF-HEADER")
	if header == nil {
		return h
	}
	if id, ok := attrValue(header, identifierAttrs...); ok {
		h.Identifier = strings.TrimSpace(id)
	}
	fields := []struct {
		tag string
		dst *string
	}{
		{"TITLE", &h.Title},
		{"COMMENT", &h.Comment},
		{"CREATION-TIME", &h.CreationTime},
		{"REPOSITORY-ID", &h.RepositoryID},
		{"REQ-IF-TOOL-ID", &h.ReqIFToolID},
		{"REQ-IF-VERSION", &h.ReqIFVersion},
		{"SOURCE-TOOL-ID", &h.SourceToolID},
	}
	for _, f := range fields {
		if el := loc.FindChild(header, f.tag); el != nil {
			*f.dst = strings.TrimSpace(el.Text())
		}
	}
	return h
}
