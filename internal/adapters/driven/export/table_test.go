package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/normalisers/reqif"
)

const carriageReturnDocument = `<?xml version="1.0" encoding="UTF-8"?>
<REQ-IF xmlns="http://www.omg.org/spec/ReqIF/20110401/reqif.xsd">
  <CORE-CONTENT>
    <REQ-IF-CONTENT>
      <SPEC-TYPES>
        <SPEC-OBJECT-TYPE IDENTIFIER="t-func" LONG-NAME="Functional">
          <SPEC-ATTRIBUTES>
            <ATTRIBUTE-DEFINITION-STRING IDENTIFIER="ad-text" LONG-NAME="Text"/>
            <ATTRIBUTE-DEFINITION-STRING IDENTIFIER="ad-path" LONG-NAME="Path"/>
          </SPEC-ATTRIBUTES>
        </SPEC-OBJECT-TYPE>
      </SPEC-TYPES>
      <SPEC-OBJECTS>
        <SPEC-OBJECT IDENTIFIER="REQ-1">
          <TYPE><SPEC-OBJECT-TYPE-REF>t-func</SPEC-OBJECT-TYPE-REF></TYPE>
          <VALUES>
            <ATTRIBUTE-VALUE-STRING THE-VALUE="line one&#13;&#10;line two&#13;">
              <DEFINITION><ATTRIBUTE-DEFINITION-STRING-REF>ad-text</ATTRIBUTE-DEFINITION-STRING-REF></DEFINITION>
            </ATTRIBUTE-VALUE-STRING>
            <ATTRIBUTE-VALUE-STRING THE-VALUE="C:\specs\r1 and a literal \\r">
              <DEFINITION><ATTRIBUTE-DEFINITION-STRING-REF>ad-path</ATTRIBUTE-DEFINITION-STRING-REF></DEFINITION>
            </ATTRIBUTE-VALUE-STRING>
          </VALUES>
        </SPEC-OBJECT>
      </SPEC-OBJECTS>
    </REQ-IF-CONTENT>
  </CORE-CONTENT>
</REQ-IF>
`

func sampleRequirements() []domain.Requirement {
	return []domain.Requirement{
		{
			ID:         "REQ-1",
			Identifier: "req-1",
			Type:       "Functional",
			Attributes: map[string]domain.AttributeValue{
				"Text":   {Kind: domain.KindXHTML, Text: `Brake, "hard", within 2s`},
				"Status": {Kind: domain.KindEnumeration, Text: "Draft"},
			},
		},
		{
			ID: "REQ-2",
			Attributes: map[string]domain.AttributeValue{
				"Notes": {Kind: domain.KindString, Text: "line one\nline two"},
			},
		},
		{ID: "REQ-3", Type: "Heading"},
	}
}

func TestWriteTable_Header(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteTable(&buf, nil))

	assert.Equal(t, "id,identifier,type,kind,attribute,value\n", buf.String())
}

func TestWriteTable_Rows(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteTable(&buf, domain.Flatten(sampleRequirements()[:1])))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "REQ-1,req-1,Functional,enumeration,Status,Draft", lines[1])
	assert.Equal(t, `REQ-1,req-1,Functional,xhtml,Text,"Brake, ""hard"", within 2s"`, lines[2])
}

func TestTable_RoundTrip(t *testing.T) {
	reqs := sampleRequirements()
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, domain.Flatten(reqs)))

	rows, err := ReadTable(&buf)
	require.NoError(t, err)

	got := domain.Unflatten(rows)
	require.Len(t, got, len(reqs))
	for i := range reqs {
		assert.Equal(t, reqs[i].ID, got[i].ID)
		assert.Equal(t, reqs[i].Identifier, got[i].Identifier)
		assert.True(t, reqs[i].Equal(got[i]), "requirement %s", reqs[i].ID)
		for name, v := range reqs[i].Attributes {
			assert.Equal(t, v.Kind, got[i].Attributes[name].Kind)
		}
	}
}

func TestTable_RoundTripParsedDocument(t *testing.T) {
	raw := &domain.RawDocument{URI: "spec.reqif", MIMEType: domain.MIMETypeReqIF, Content: []byte(carriageReturnDocument)}
	parsed, err := reqif.New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, parsed.Requirements, 1)
	original := parsed.Requirements[0]
	require.Equal(t, "line one\r\nline two\r", original.Attributes["Text"].Text)
	require.Equal(t, `C:\specs\r1 and a literal \\r`, original.Attributes["Path"].Text)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, domain.Flatten(parsed.Requirements)))
	assert.NotContains(t, buf.String(), "\r")

	rows, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.ElementsMatch(t, domain.Flatten(parsed.Requirements), rows)

	got := domain.Unflatten(rows)
	require.Len(t, got, 1)
	assert.True(t, original.Equal(got[0]))
	for name, v := range original.Attributes {
		assert.Equal(t, v.Text, got[0].Attributes[name].Text, name)
	}
}

func TestReadTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		invalid bool
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: "empty table",
			invalid: true,
		},
		{
			name:    "wrong header",
			input:   "id,type,value\nA,B,C\n",
			wantErr: "read header",
		},
		{
			name:    "renamed column",
			input:   "id,identifier,type,kind,name,value\n",
			wantErr: "unexpected header",
			invalid: true,
		},
		{
			name:    "short row",
			input:   "id,identifier,type,kind,attribute,value\nA,a,T\n",
			wantErr: "read row",
		},
		{
			name:    "empty id",
			input:   "id,identifier,type,kind,attribute,value\n,a,T,string,X,v\n",
			wantErr: "line 2: empty id",
			invalid: true,
		},
		{
			name:    "unknown kind",
			input:   "id,identifier,type,kind,attribute,value\nA,a,T,blob,X,v\n",
			wantErr: `unknown kind "blob"`,
			invalid: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tt.input))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.invalid {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestReadTable_AttributeLessRow(t *testing.T) {
	rows, err := ReadTable(strings.NewReader("id,identifier,type,kind,attribute,value\nA,,Heading,,,\n"))

	require.NoError(t, err)
	assert.Equal(t, []domain.TableRow{{ID: "A", Type: "Heading"}}, rows)
}
