// Package rename parses the payload of `renamed:` in availability
// attributes and turns a call site into the text edits that migrate it to
// the new name: label reshaping, instance-method and property promotion,
// setter construction and operator renames.
//
// Everything here is a pure function of its inputs.
package rename
