// Package diffconf loads differ configurations from YAML files.
//
// A configuration looks like
//
//	ignoreAttributes: [data-oe-id]
//	subtreeTags: [form, list]
//	identifyingAttrs: [name, id]
//	candidateKey: signature
//	xpathWithMeta: false
//	flat: false
//	expr:
//	  ignore: 'name startsWith "data-"'
//	  subtree: 'tag == "page" && attrs.name != ""'
//	  candidate: 'tag == "field" ? attrs.name : ""'
//
// Expressions are evaluated with github.com/expr-lang/expr against the
// element: tag, attrs, text and depth, plus name for ignore.
package diffconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Candidate key kinds.
const (
	CandidateNone      = "none"
	CandidateSignature = "signature"
)

type File struct {
	IgnoreAttributes []string `yaml:"ignoreAttributes" json:"ignoreAttributes"`
	SubtreeTags      []string `yaml:"subtreeTags" json:"subtreeTags"`
	IdentifyingAttrs []string `yaml:"identifyingAttrs" json:"identifyingAttrs"`
	CandidateKey     string   `yaml:"candidateKey" json:"candidateKey"`
	XPathWithMeta    bool     `yaml:"xpathWithMeta" json:"xpathWithMeta"`
	Flat             bool     `yaml:"flat" json:"flat"`
	Expr             Exprs    `yaml:"expr" json:"expr"`
}

type Exprs struct {
	Ignore    string `yaml:"ignore" json:"ignore"`
	Subtree   string `yaml:"subtree" json:"subtree"`
	Candidate string `yaml:"candidate" json:"candidate"`
}

// Load reads the configuration at path, applying overrides in order.
func Load(path string, overrides ...Override) (*File, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	f, err := Parse(d, overrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML configuration. The document is converted to JSON,
// the overrides, which are JSON patches, are applied to it and the result
// is decoded as JSON.
func Parse(d []byte, overrides ...Override) (*File, error) {
	j, err := yaml.YAMLToJSON(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if j = bytes.TrimSpace(j); len(j) == 0 || string(j) == "null" {
		j = []byte("{}")
	}
	for _, o := range overrides {
		j, err = o.apply(j)
		if err != nil {
			return nil, err
		}
	}
	f := &File{}
	dec := json.NewDecoder(bytes.NewReader(j))
	dec.DisallowUnknownFields()
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) validate() error {
	switch f.CandidateKey {
	case "", CandidateNone, CandidateSignature:
	default:
		return fmt.Errorf("%w: unknown candidateKey %q", ErrConfig, f.CandidateKey)
	}
	if f.CandidateKey == CandidateSignature && f.Expr.Candidate != "" {
		return fmt.Errorf("%w: candidateKey and expr.candidate are exclusive", ErrConfig)
	}
	return nil
}
