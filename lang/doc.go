// Package lang implements the slang configuration language: a tokenizer,
// a mode-stack parser producing an ordered document tree, and serializers
// for native slang text, JSON, and YAML.
//
// A slang document is a sequence of key = value pairs separated by commas
// or newlines. Values are null, booleans, numbers, double-quoted strings,
// arrays in brackets, or nested documents in braces. Line comments begin
// with '#'. Constants are declared as '@name = value' and referenced as
// '@name'; they exist only while parsing and never appear in output.
//
// Parsing is all-or-nothing: any lexical or structural error aborts the
// parse and no partial document is returned.
package lang
