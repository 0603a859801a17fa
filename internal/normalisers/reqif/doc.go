// Package reqif parses requirements-interchange documents (.reqif) and
// their zip archives (.reqifz) into canonical requirement records.
//
// Parsing is a fixed pipeline over one document tree:
//
//   - Locator finds elements regardless of how the exporter used namespaces.
//   - BuildCatalog indexes attribute definitions, spec-object types and
//     enumerations once per document.
//   - Extractor turns one attribute value into text according to its kind.
//   - Assembler builds one domain.Requirement per SPEC-OBJECT.
//
// The Normaliser wires these together behind the driven.Normaliser port.
// Only file-level failures (corrupt archive, malformed XML) are returned
// as errors; everything else is recorded in domain.Diagnostics.
package reqif
