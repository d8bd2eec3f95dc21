// Package resolver maps LLM model names to tokenizer encoding names.
//
// A name resolves through four steps, first match wins: an exact lookup
// table, an ordered prefix table (versioned model names like gpt-4-0314),
// the name itself when it already is an encoding name, and finally
// DefaultEncoding with a warning. The tables are static package data.
package resolver
