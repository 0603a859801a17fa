// Package normalisers holds the Normaliser implementations that turn raw
// document bytes into requirements. The reqif normaliser handles plain
// and zipped requirements interchange documents.
package normalisers
