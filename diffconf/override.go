package diffconf

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

// Override changes a configuration document before it is decoded.
type Override struct {
	merge []byte
	ops   jsonpatch.Patch
}

// Merge returns an override merging the YAML document d into the
// configuration, as a JSON merge patch (RFC 7386).
func Merge(d string) (Override, error) {
	j, err := yaml.YAMLToJSON([]byte(d))
	if err != nil {
		return Override{}, fmt.Errorf("%w: merge %q: %w", ErrConfig, d, err)
	}
	return Override{merge: j}, nil
}

// Set returns an override setting one top level field, value being YAML.
func Set(field, value string) (Override, error) {
	return Merge(field + ": " + value)
}

// Patch returns an override applying the JSON patch (RFC 6902) operations
// of the YAML document d.
func Patch(d string) (Override, error) {
	j, err := yaml.YAMLToJSON([]byte(d))
	if err != nil {
		return Override{}, fmt.Errorf("%w: patch %q: %w", ErrConfig, d, err)
	}
	ops, err := jsonpatch.DecodePatch(j)
	if err != nil {
		return Override{}, fmt.Errorf("%w: patch %q: %w", ErrConfig, d, err)
	}
	return Override{ops: ops}, nil
}

func (o Override) apply(j []byte) ([]byte, error) {
	var err error
	if o.merge != nil {
		j, err = jsonpatch.MergePatch(j, o.merge)
		if err != nil {
			return nil, fmt.Errorf("%w: merge: %w", ErrConfig, err)
		}
	}
	if o.ops != nil {
		j, err = o.ops.Apply(j)
		if err != nil {
			return nil, fmt.Errorf("%w: patch: %w", ErrConfig, err)
		}
	}
	return j, nil
}
