package reqif

import (
	"archive/zip"
	"bytes"
	"strings"

	"github.com/beevik/etree"
)

const reqifNS = "http://www.omg.org/spec/ReqIF/20110401/reqif.xsd"

// sampleTemplate is a small but complete document. "@@" marks where a
// namespace prefix goes and "%ROOTNS%" the root namespace declaration.
const sampleTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<@@REQ-IF %ROOTNS% xmlns:xhtml="http://www.w3.org/1999/xhtml">
  <@@THE-HEADER>
    <@@REQ-IF-HEADER IDENTIFIER="hdr-1">
      <@@CREATION-TIME>2024-01-01T00:00:00</@@CREATION-TIME>
      <@@REQ-IF-TOOL-ID>tool</@@REQ-IF-TOOL-ID>
      <@@REQ-IF-VERSION>1.0</@@REQ-IF-VERSION>
      <@@SOURCE-TOOL-ID>src</@@SOURCE-TOOL-ID>
      <@@TITLE>Brakes</@@TITLE>
    </@@REQ-IF-HEADER>
  </@@THE-HEADER>
  <@@CORE-CONTENT>
    <@@REQ-IF-CONTENT>
      <@@DATATYPES>
        <@@DATATYPE-DEFINITION-STRING IDENTIFIER="dt-str" LONG-NAME="String" MAX-LENGTH="1000"/>
        <@@DATATYPE-DEFINITION-ENUMERATION IDENTIFIER="dt-prio" LONG-NAME="Priority">
          <@@SPECIFIED-VALUES>
            <@@ENUM-VALUE IDENTIFIER="ev-high" LONG-NAME="High"/>
            <@@ENUM-VALUE IDENTIFIER="ev-low" LONG-NAME="Low"/>
            <@@ENUM-VALUE IDENTIFIER="ev-mid">
              <@@PROPERTIES><@@EMBEDDED-VALUE KEY="2" OTHER-CONTENT="Medium"/></@@PROPERTIES>
            </@@ENUM-VALUE>
          </@@SPECIFIED-VALUES>
        </@@DATATYPE-DEFINITION-ENUMERATION>
      </@@DATATYPES>
      <@@SPEC-TYPES>
        <@@SPEC-OBJECT-TYPE IDENTIFIER="sot-func" LONG-NAME="Functional">
          <@@SPEC-ATTRIBUTES>
            <@@ATTRIBUTE-DEFINITION-STRING IDENTIFIER="ad-text" LONG-NAME="Object Text">
              <@@TYPE><@@DATATYPE-DEFINITION-STRING-REF>dt-str</@@DATATYPE-DEFINITION-STRING-REF></@@TYPE>
            </@@ATTRIBUTE-DEFINITION-STRING>
            <@@ATTRIBUTE-DEFINITION-XHTML IDENTIFIER="ad-desc" LONG-NAME="Description"/>
            <@@ATTRIBUTE-DEFINITION-ENUMERATION IDENTIFIER="ad-prio" LONG-NAME="Priority" MULTI-VALUED="true"/>
            <@@ATTRIBUTE-DEFINITION-INTEGER IDENTIFIER="ad-num" LONG-NAME="Number"/>
            <@@ATTRIBUTE-DEFINITION-BOOLEAN IDENTIFIER="ad-safe" LONG-NAME="Safety"/>
            <@@ATTRIBUTE-DEFINITION-DATE IDENTIFIER="ad-date"/>
            <@@ATTRIBUTE-DEFINITION-REAL LONG-NAME="Nameless"/>
          </@@SPEC-ATTRIBUTES>
        </@@SPEC-OBJECT-TYPE>
        <@@SPECIFICATION-TYPE IDENTIFIER="st-1" LONG-NAME="Spec"/>
      </@@SPEC-TYPES>
      <@@SPEC-OBJECTS>
        <@@SPEC-OBJECT IDENTIFIER="REQ-1" LAST-CHANGE="2024-01-01T00:00:00">
          <@@TYPE><@@SPEC-OBJECT-TYPE-REF>sot-func</@@SPEC-OBJECT-TYPE-REF></@@TYPE>
          <@@VALUES>
            <@@ATTRIBUTE-VALUE-STRING THE-VALUE="Hello">
              <@@DEFINITION><@@ATTRIBUTE-DEFINITION-STRING-REF>ad-text</@@ATTRIBUTE-DEFINITION-STRING-REF></@@DEFINITION>
            </@@ATTRIBUTE-VALUE-STRING>
            <@@ATTRIBUTE-VALUE-XHTML>
              <@@DEFINITION><@@ATTRIBUTE-DEFINITION-XHTML-REF>ad-desc</@@ATTRIBUTE-DEFINITION-XHTML-REF></@@DEFINITION>
              <@@THE-VALUE><xhtml:div><xhtml:p>Stop  within<xhtml:br/>10 m &amp; safely</xhtml:p></xhtml:div></@@THE-VALUE>
            </@@ATTRIBUTE-VALUE-XHTML>
            <@@ATTRIBUTE-VALUE-ENUMERATION>
              <@@DEFINITION><@@ATTRIBUTE-DEFINITION-ENUMERATION-REF>ad-prio</@@ATTRIBUTE-DEFINITION-ENUMERATION-REF></@@DEFINITION>
              <@@VALUES><@@ENUM-VALUE-REF>ev-high</@@ENUM-VALUE-REF><@@ENUM-VALUE-REF>ev-mid</@@ENUM-VALUE-REF></@@VALUES>
            </@@ATTRIBUTE-VALUE-ENUMERATION>
            <@@ATTRIBUTE-VALUE-INTEGER THE-VALUE="007">
              <@@DEFINITION><@@ATTRIBUTE-DEFINITION-INTEGER-REF>ad-num</@@ATTRIBUTE-DEFINITION-INTEGER-REF></@@DEFINITION>
            </@@ATTRIBUTE-VALUE-INTEGER>
            <@@ATTRIBUTE-VALUE-BOOLEAN THE-VALUE="true">
              <@@DEFINITION><@@ATTRIBUTE-DEFINITION-BOOLEAN-REF>ad-safe</@@ATTRIBUTE-DEFINITION-BOOLEAN-REF></@@DEFINITION>
            </@@ATTRIBUTE-VALUE-BOOLEAN>
            <@@ATTRIBUTE-VALUE-DATE THE-VALUE="2024-02-03">
              <@@DEFINITION><@@ATTRIBUTE-DEFINITION-DATE-REF>ad-date</@@ATTRIBUTE-DEFINITION-DATE-REF></@@DEFINITION>
            </@@ATTRIBUTE-VALUE-DATE>
          </@@VALUES>
        </@@SPEC-OBJECT>
        <@@SPEC-OBJECT>
          <@@TYPE><@@SPEC-OBJECT-TYPE-REF>sot-missing</@@SPEC-OBJECT-TYPE-REF></@@TYPE>
          <@@VALUES>
            <@@ATTRIBUTE-VALUE-STRING THE-VALUE="orphan">
              <@@DEFINITION><@@ATTRIBUTE-DEFINITION-STRING-REF>ad-ghost</@@ATTRIBUTE-DEFINITION-STRING-REF></@@DEFINITION>
            </@@ATTRIBUTE-VALUE-STRING>
            <@@ATTRIBUTE-VALUE-STRING THE-VALUE="no definition"/>
            <@@ATTRIBUTE-VALUE-STRING THE-VALUE="World">
              <@@DEFINITION><@@ATTRIBUTE-DEFINITION-STRING-REF>ad-text</@@ATTRIBUTE-DEFINITION-STRING-REF></@@DEFINITION>
            </@@ATTRIBUTE-VALUE-STRING>
            <@@ATTRIBUTE-VALUE-ENUMERATION>
              <@@DEFINITION><@@ATTRIBUTE-DEFINITION-ENUMERATION-REF>ad-prio</@@ATTRIBUTE-DEFINITION-ENUMERATION-REF></@@DEFINITION>
              <@@VALUES><@@ENUM-VALUE-REF>ev-unknown</@@ENUM-VALUE-REF></@@VALUES>
            </@@ATTRIBUTE-VALUE-ENUMERATION>
          </@@VALUES>
        </@@SPEC-OBJECT>
      </@@SPEC-OBJECTS>
    </@@REQ-IF-CONTENT>
  </@@CORE-CONTENT>
</@@REQ-IF>`

// Document flavours covering the namespace styles seen in exports.
var (
	defaultNSDoc  = sampleDoc("", `xmlns="`+reqifNS+`"`)
	prefixedNSDoc = sampleDoc("reqif:", `xmlns:reqif="`+reqifNS+`"`)
	noNSDoc       = sampleDoc("", "")
)

func sampleDoc(prefix, rootNS string) string {
	doc := strings.ReplaceAll(sampleTemplate, "@@", prefix)
	return strings.Replace(doc, "%ROOTNS%", rootNS, 1)
}

// simpleDoc returns a document with one string attribute per requirement.
func simpleDoc(values map[string]string) string {
	var b strings.Builder
	b.WriteString(`<REQ-IF xmlns="` + reqifNS + `"><CORE-CONTENT><REQ-IF-CONTENT>`)
	b.WriteString(`<SPEC-TYPES><SPEC-OBJECT-TYPE IDENTIFIER="t"><SPEC-ATTRIBUTES>`)
	b.WriteString(`<ATTRIBUTE-DEFINITION-STRING IDENTIFIER="ad-text" LONG-NAME="Object Text"/>`)
	b.WriteString(`</SPEC-ATTRIBUTES></SPEC-OBJECT-TYPE></SPEC-TYPES><SPEC-OBJECTS>`)
	for id, v := range values {
		b.WriteString(`<SPEC-OBJECT IDENTIFIER="` + id + `"><VALUES><ATTRIBUTE-VALUE-STRING THE-VALUE="` + v + `">`)
		b.WriteString(`<DEFINITION><ATTRIBUTE-DEFINITION-STRING-REF>ad-text</ATTRIBUTE-DEFINITION-STRING-REF></DEFINITION>`)
		b.WriteString(`</ATTRIBUTE-VALUE-STRING></VALUES></SPEC-OBJECT>`)
	}
	b.WriteString(`</SPEC-OBJECTS></REQ-IF-CONTENT></CORE-CONTENT></REQ-IF>`)
	return b.String()
}

// createArchive builds a zip in memory from name/content pairs.
func createArchive(files ...string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for i := 0; i+1 < len(files); i += 2 {
		f, _ := w.Create(files[i])
		f.Write([]byte(files[i+1]))
	}
	w.Close()
	return buf.Bytes()
}

// mustRoot parses xml and returns its root element.
func mustRoot(xml string) *etree.Element {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		panic(err)
	}
	return doc.Root()
}
