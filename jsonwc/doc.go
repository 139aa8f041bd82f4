// Package jsonwc reads JSON-with-comments: JSON text that may also carry
// // line comments and /* */ block comments.
//
// Comments are not deleted but overwritten with spaces, one per character,
// while line breaks inside them are kept. A JSON parser running on the
// result therefore reports errors at the same line and column as in the
// original text, and the errors returned by this package carry positions
// in the original text as well.
package jsonwc
