package reqif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

func TestBuildCatalog(t *testing.T) {
	for name, doc := range map[string]string{
		"default namespace":  defaultNSDoc,
		"prefixed namespace": prefixedNSDoc,
		"no namespace":       noNSDoc,
	} {
		t.Run(name, func(t *testing.T) {
			root := mustRoot(doc)
			diag := domain.NewDiagnostics("test", 0)
			cat := BuildCatalog(root, NewLocator(root), diag)

			assert.Len(t, cat.Attributes, 6)
			assert.Equal(t, domain.AttributeDefinition{Identifier: "ad-text", Name: "Object Text", Kind: domain.KindString}, cat.Attributes["ad-text"])
			assert.Equal(t, domain.KindXHTML, cat.Attributes["ad-desc"].Kind)
			assert.Equal(t, "ad-date", cat.Attributes["ad-date"].Name, "name falls back to identifier")

			assert.Equal(t, 1, cat.Counts[domain.KindString])
			assert.Equal(t, 1, cat.Counts[domain.KindBoolean])
			assert.Zero(t, cat.Counts[domain.KindReal])

			require.Len(t, cat.Types, 1)
			assert.Equal(t, "Functional", cat.Types["sot-func"].Name)

			require.Len(t, cat.Enums, 1)
			assert.Equal(t, map[string]string{"ev-high": "High", "ev-low": "Low", "ev-mid": "Medium"}, cat.Enums["dt-prio"].Values)
			assert.Equal(t, cat.Enums["dt-prio"].Values, cat.EnumValues)

			assert.Equal(t, 1, cat.Skipped)
			assert.Equal(t, 1, diag.IssuesTotal)
			assert.Contains(t, diag.Issues[0], "ATTRIBUTE-DEFINITION-REAL")
		})
	}
}

func TestBuildCatalog_Lookups(t *testing.T) {
	root := mustRoot(defaultNSDoc)
	cat := BuildCatalog(root, NewLocator(root), nil)

	name, ok := cat.AttributeName("ad-prio")
	assert.True(t, ok)
	assert.Equal(t, "Priority", name)

	name, ok = cat.AttributeName("ad-unknown")
	assert.False(t, ok)
	assert.Equal(t, "ad-unknown", name)

	name, ok = cat.TypeName("sot-x")
	assert.False(t, ok)
	assert.Equal(t, "sot-x", name)

	label, ok := cat.EnumLabel("ev-low")
	assert.True(t, ok)
	assert.Equal(t, "Low", label)
}

func TestBuildCatalog_LooseEnumValues(t *testing.T) {
	root := mustRoot(`<REQ-IF><ENUM-VALUE IDENTIFIER="e1" LONG-NAME="One"/><ENUM-VALUE id="e2"/></REQ-IF>`)
	cat := BuildCatalog(root, NewLocator(root), nil)

	assert.Empty(t, cat.Enums)
	assert.Equal(t, map[string]string{"e1": "One", "e2": "e2"}, cat.EnumValues)
}

func TestBuildCatalog_EnumDefinitionFallback(t *testing.T) {
	root := mustRoot(`<REQ-IF><ENUM-DEFINITION IDENTIFIER="d"><ENUM-VALUE IDENTIFIER="v" NAME="Vee"/></ENUM-DEFINITION></REQ-IF>`)
	cat := BuildCatalog(root, NewLocator(root), nil)

	require.Contains(t, cat.Enums, "d")
	assert.Equal(t, "Vee", cat.EnumValues["v"])
}

func TestBuildCatalog_NilRoot(t *testing.T) {
	cat := BuildCatalog(nil, NewLocator(nil), nil)
	require.NotNil(t, cat)
	assert.Empty(t, cat.Attributes)
}

func TestKindFromTag(t *testing.T) {
	tests := map[string]domain.AttributeKind{
		"ATTRIBUTE-VALUE-STRING":           domain.KindString,
		"ATTRIBUTE-VALUE-XHTML":            domain.KindXHTML,
		"attribute-value-enumeration":      domain.KindEnumeration,
		"ATTRIBUTE-DEFINITION-INTEGER":     domain.KindInteger,
		"ATTRIBUTE-DEFINITION-REAL-REF":    domain.KindReal,
		"ATTRIBUTE-VALUE-DATE":             domain.KindDate,
		"ATTRIBUTE-DEFINITION-BOOLEAN-REF": domain.KindBoolean,
		"ATTRIBUTE-VALUE-MATRIX":           domain.KindUnknown,
		"SOMETHING-ELSE":                   domain.KindUnknown,
	}
	for tag, want := range tests {
		t.Run(tag, func(t *testing.T) {
			assert.Equal(t, want, kindFromTag(tag))
		})
	}
}
