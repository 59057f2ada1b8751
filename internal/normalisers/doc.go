// Package normalisers provides implementations of the Normaliser interface
// for various document formats. Each normaliser knows how to extract plain
// text from a specific declared type.
//
// Normalisers are registered with the Registry at startup; a declared type
// without a registered normaliser fails ingestion with
// domain.ErrUnsupportedFormat.
package normalisers
