// Package parg parses command line arguments and small textual formats
// with precise, span carrying diagnostics.
//
// The package has three layers. Parg and PargRef navigate an argument
// list with a cursor and typed accessors such as NextArg and
// CurValOrNext. Reader and the Parsef family parse structured text,
// format strings like "{}:{}" drive what is read. Error ties both
// together, every failure records the arguments, which one failed and
// the byte span inside it, and renders a compiler style diagnostic.
package parg
