package resolver

import (
	"fmt"
	"io"
	"strings"
)

const (
	// encodingO200kBase is the encoding for GPT-4o, o1 and o3.
	encodingO200kBase = "o200k_base"
	// encodingCL100kBase is the encoding for GPT-4 and GPT-3.5-turbo.
	encodingCL100kBase = "cl100k_base"
	// encodingP50kBase is the encoding for the deprecated text/code models.
	encodingP50kBase = "p50k_base"
	// encodingP50kEdit is the encoding for the deprecated edit models.
	encodingP50kEdit = "p50k_edit"
	// encodingR50kBase is the encoding for the oldest GPT-3 era models.
	encodingR50kBase = "r50k_base"
)

// DefaultEncoding is returned for model names nothing else matches.
const DefaultEncoding = encodingCL100kBase

// Family groups models for display purposes.
type Family int

const (
	FamilyAnthropic Family = iota
	FamilyOpenAI
	FamilyShorthand
	FamilyOther
)

type modelInfo struct {
	encoding string
	family   Family
}

// modelEncodings is the exact-match table from model name to encoding.
// Static data; never mutated after process start.
var modelEncodings = map[string]modelInfo{
	// Anthropic models.
	"claude-3-opus":   {encodingO200kBase, FamilyAnthropic},
	"claude-3-sonnet": {encodingO200kBase, FamilyAnthropic},
	"claude-3-haiku":  {encodingO200kBase, FamilyAnthropic},
	"claude-3":        {encodingO200kBase, FamilyAnthropic},
	"claude-2":        {encodingO200kBase, FamilyAnthropic},
	"claude-2.0":      {encodingO200kBase, FamilyAnthropic},
	"claude-2.1":      {encodingO200kBase, FamilyAnthropic},
	"claude-instant":  {encodingO200kBase, FamilyAnthropic},
	"claude":          {encodingO200kBase, FamilyAnthropic},
	"o1":              {encodingO200kBase, FamilyAnthropic},
	"o3":              {encodingO200kBase, FamilyAnthropic},

	// OpenAI chat models.
	"gpt-4o":        {encodingO200kBase, FamilyOpenAI},
	"gpt-4-turbo":   {encodingCL100kBase, FamilyOpenAI},
	"gpt-4":         {encodingCL100kBase, FamilyOpenAI},
	"gpt-3.5-turbo": {encodingCL100kBase, FamilyOpenAI},
	"gpt-3.5":       {encodingCL100kBase, FamilyOpenAI},
	"gpt-35-turbo":  {encodingCL100kBase, FamilyOpenAI}, // Azure deployment name
	// OpenAI base models.
	"davinci-002": {encodingCL100kBase, FamilyOpenAI},
	"babbage-002": {encodingCL100kBase, FamilyOpenAI},
	// OpenAI embeddings.
	"text-embedding-ada-002": {encodingCL100kBase, FamilyOpenAI},
	"text-embedding-3-small": {encodingCL100kBase, FamilyOpenAI},
	"text-embedding-3-large": {encodingCL100kBase, FamilyOpenAI},

	// Shorthands.
	"4o":      {encodingO200kBase, FamilyShorthand},  // gpt-4o
	"4":       {encodingCL100kBase, FamilyShorthand}, // gpt-4
	"3.5":     {encodingCL100kBase, FamilyShorthand}, // gpt-3.5-turbo
	"opus":    {encodingO200kBase, FamilyShorthand},  // claude-3-opus
	"sonnet":  {encodingO200kBase, FamilyShorthand},  // claude-3-sonnet
	"haiku":   {encodingO200kBase, FamilyShorthand},  // claude-3-haiku
	"chatgpt": {encodingCL100kBase, FamilyShorthand},

	// Deprecated completion models.
	"text-davinci-003": {encodingP50kBase, FamilyOpenAI},
	"text-davinci-002": {encodingP50kBase, FamilyOpenAI},
	"text-davinci-001": {encodingR50kBase, FamilyOpenAI},
	"text-curie-001":   {encodingR50kBase, FamilyOpenAI},
	"text-babbage-001": {encodingR50kBase, FamilyOpenAI},
	"text-ada-001":     {encodingR50kBase, FamilyOpenAI},
	"davinci":          {encodingR50kBase, FamilyOpenAI},
	"curie":            {encodingR50kBase, FamilyOpenAI},
	"babbage":          {encodingR50kBase, FamilyOpenAI},
	"ada":              {encodingR50kBase, FamilyOpenAI},
	// Deprecated code models.
	"code-davinci-002": {encodingP50kBase, FamilyOther},
	"code-davinci-001": {encodingP50kBase, FamilyOther},
	"code-cushman-002": {encodingP50kBase, FamilyOther},
	"code-cushman-001": {encodingP50kBase, FamilyOther},
	"davinci-codex":    {encodingP50kBase, FamilyOther},
	"cushman-codex":    {encodingP50kBase, FamilyOther},
	// Deprecated edit models.
	"text-davinci-edit-001": {encodingP50kEdit, FamilyOther},
	"code-davinci-edit-001": {encodingP50kEdit, FamilyOther},
	// Deprecated embeddings.
	"text-similarity-davinci-001":  {encodingR50kBase, FamilyOpenAI},
	"text-similarity-curie-001":    {encodingR50kBase, FamilyOpenAI},
	"text-similarity-babbage-001":  {encodingR50kBase, FamilyOpenAI},
	"text-similarity-ada-001":      {encodingR50kBase, FamilyOpenAI},
	"text-search-davinci-doc-001":  {encodingR50kBase, FamilyOpenAI},
	"text-search-curie-doc-001":    {encodingR50kBase, FamilyOpenAI},
	"text-search-babbage-doc-001":  {encodingR50kBase, FamilyOpenAI},
	"text-search-ada-doc-001":      {encodingR50kBase, FamilyOpenAI},
	"code-search-babbage-code-001": {encodingR50kBase, FamilyOther},
	"code-search-ada-code-001":     {encodingR50kBase, FamilyOther},

	// Open source. tiktoken-go ships no gpt2 dictionary; r50k_base uses
	// the same vocabulary.
	"gpt2":  {encodingR50kBase, FamilyOther},
	"gpt-2": {encodingR50kBase, FamilyOther},
}

type prefixRule struct {
	prefix   string
	encoding string
}

// prefixEncodings is consulted only when the exact table misses. Order
// matters: prefixes are not disjoint and the first match wins.
var prefixEncodings = []prefixRule{
	{"o1-", encodingO200kBase},
	{"o3-", encodingO200kBase},
	// Chat models, e.g. gpt-4o-2024-05-13, gpt-4-0314, gpt-3.5-turbo-0301.
	{"chatgpt-4o-", encodingO200kBase},
	{"gpt-4o-", encodingO200kBase},
	{"gpt-4-", encodingCL100kBase},
	{"gpt-3.5-turbo-", encodingCL100kBase},
	{"gpt-35-turbo-", encodingCL100kBase}, // Azure deployment name
	// Fine-tuned models.
	{"ft:gpt-4o", encodingO200kBase},
	{"ft:gpt-4", encodingCL100kBase},
	{"ft:gpt-3.5-turbo", encodingCL100kBase},
	{"ft:davinci-002", encodingCL100kBase},
	{"ft:babbage-002", encodingCL100kBase},
}

// Resolver maps model names to tokenizer encoding names.
//
// Resolution never fails: names that match nothing fall back to
// DefaultEncoding with a warning on the diagnostic writer.
type Resolver struct {
	known map[string]struct{}
	diag  io.Writer
}

// New creates a Resolver. encodings is the set of valid encoding names,
// used for the identity fallback; diag receives warnings (nil discards
// them).
func New(encodings []string, diag io.Writer) *Resolver {
	known := make(map[string]struct{}, len(encodings))
	for _, name := range encodings {
		known[name] = struct{}{}
	}
	if diag == nil {
		diag = io.Discard
	}
	return &Resolver{known: known, diag: diag}
}

// Resolve returns the encoding name for a model name, trying in order:
// exact table, prefix table, the name itself if it is a known encoding,
// and finally DefaultEncoding with a warning.
func (r *Resolver) Resolve(model string) string {
	if info, ok := modelEncodings[model]; ok {
		return info.encoding
	}

	for _, rule := range prefixEncodings {
		if strings.HasPrefix(model, rule.prefix) {
			return rule.encoding
		}
	}

	if _, ok := r.known[model]; ok {
		return model
	}

	fmt.Fprintf(r.diag, "Warning: Unknown model '%s'. Defaulting to %s encoding.\n", model, DefaultEncoding)
	return DefaultEncoding
}

// Models returns every model name in the exact table, in no particular
// order. Sorting is left to the caller.
func Models() []string {
	out := make([]string, 0, len(modelEncodings))
	for model := range modelEncodings {
		out = append(out, model)
	}
	return out
}

// ModelFamily reports the display family for a model in the exact table.
func ModelFamily(model string) (Family, bool) {
	info, ok := modelEncodings[model]
	return info.family, ok
}
