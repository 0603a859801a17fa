package reqif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

func newTestExtractor(enumValues map[string]string) *Extractor {
	cat := &Catalog{EnumValues: enumValues}
	return NewExtractor(NewLocator(nil), cat)
}

func TestExtractor_Kinds(t *testing.T) {
	x := newTestExtractor(map[string]string{"e1": "High", "e2": "Low"})

	tests := []struct {
		name string
		xml  string
		kind domain.AttributeKind
		want string
	}{
		{"string attribute", `<V THE-VALUE="Hello"/>`, domain.KindString, "Hello"},
		{"string attribute keeps spacing", `<V THE-VALUE=" a  b "/>`, domain.KindString, " a  b "},
		{"string child", `<V><THE-VALUE>  Hello <b>big</b>   world </THE-VALUE></V>`, domain.KindString, "Hello big world"},
		{"string missing", `<V/>`, domain.KindString, ""},
		{"xhtml child", `<V><THE-VALUE><div><p>One</p><p>Two<br/>Three</p></div></THE-VALUE></V>`, domain.KindXHTML, "One Two Three"},
		{"xhtml entities", `<V><THE-VALUE><p>a &amp;lt; b</p></THE-VALUE></V>`, domain.KindXHTML, "a < b"},
		{"xhtml stray reference", `<V><DEFINITION><REF>_abc123</REF></DEFINITION><p>Actual text</p></V>`, domain.KindXHTML, "Actual text"},
		{"xhtml stray reference in holder", `<V><THE-VALUE>_x9 Body</THE-VALUE></V>`, domain.KindXHTML, "Body"},
		{"enumeration single", `<V><VALUES><ENUM-VALUE-REF>e1</ENUM-VALUE-REF></VALUES></V>`, domain.KindEnumeration, "High"},
		{"enumeration multiple", `<V><VALUES><ENUM-VALUE-REF>e1</ENUM-VALUE-REF><ENUM-VALUE-REF REF="e2"/></VALUES></V>`, domain.KindEnumeration, "High, Low"},
		{"enumeration empty", `<V><VALUES/></V>`, domain.KindEnumeration, ""},
		{"integer verbatim", `<V THE-VALUE="007"/>`, domain.KindInteger, "007"},
		{"real verbatim", `<V><THE-VALUE>1.50</THE-VALUE></V>`, domain.KindReal, "1.50"},
		{"date verbatim", `<V THE-VALUE="2024-02-03T10:00:00+01:00"/>`, domain.KindDate, "2024-02-03T10:00:00+01:00"},
		{"integer keeps padding", `<V THE-VALUE=" 42 "/>`, domain.KindInteger, " 42 "},
		{"real child keeps padding", `<V><THE-VALUE> 3.5</THE-VALUE></V>`, domain.KindReal, " 3.5"},
		{"boolean true", `<V THE-VALUE="true"/>`, domain.KindBoolean, "Yes"},
		{"boolean one", `<V THE-VALUE="1"/>`, domain.KindBoolean, "Yes"},
		{"boolean no", `<V THE-VALUE="NO"/>`, domain.KindBoolean, "No"},
		{"boolean zero", `<V THE-VALUE="0"/>`, domain.KindBoolean, "No"},
		{"boolean other", `<V THE-VALUE="maybe"/>`, domain.KindBoolean, "maybe"},
		{"unknown value attribute", `<V VALUE="x"/>`, domain.KindUnknown, "x"},
		{"unknown flattens all", `<V><A>x</A> y</V>`, domain.KindUnknown, "x y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unresolved, err := x.Extract(mustRoot(tt.xml), tt.kind)
			require.NoError(t, err)
			assert.Empty(t, unresolved)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractor_UnresolvedEnumeration(t *testing.T) {
	x := newTestExtractor(map[string]string{"e1": "High"})

	got, unresolved, err := x.Extract(mustRoot(`<V><VALUES><ENUM-VALUE-REF>e1</ENUM-VALUE-REF><ENUM-VALUE-REF>e9</ENUM-VALUE-REF></VALUES></V>`), domain.KindEnumeration)
	require.NoError(t, err)
	assert.Equal(t, "High, e9", got)
	assert.Equal(t, []string{"e9"}, unresolved)
}

func TestExtractor_NilValue(t *testing.T) {
	_, _, err := newTestExtractor(nil).Extract(nil, domain.KindString)
	assert.Error(t, err)
}

func TestFlattenText(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{"tail text", `<p>a<b>b</b>c</p>`, "a b c"},
		{"object alt", `<p>see <object alt="diagram" data="x.png"/> here</p>`, "see diagram here"},
		{"ole object dropped", `<p>see <object alt="OLE Object"/> here</p>`, "see here"},
		{"object without alt", `<p>x<object data="y"/></p>`, "x"},
		{"uppercase break", `<p>a<BR/>b</p>`, "a b"},
		{"whitespace only", `<p>  <span> </span> </p>`, ""},
		{"nbsp entity", `<p>a&#160;b</p>`, "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenText(mustRoot(tt.xml)))
		})
	}

	assert.Empty(t, FlattenText(nil))
}
