// Package pagemap describes page objects declaratively. A YAML map names the
// elements of a region and its nested regions; Bind turns it into a
// collection rooted at any handle.
//
//	name: inbox
//	elements:
//	  search: "input[name=q]"
//	regions:
//	  messages:
//	    selector: "table#messages"
//	    elements:
//	      rows: "tbody tr"
package pagemap

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Spec is one region of a page map.
type Spec struct {
	Name     string            `yaml:"name"`
	Selector string            `yaml:"selector"`
	Elements map[string]string `yaml:"elements"`
	Regions  map[string]*Spec  `yaml:"regions"`
}

func Load(r io.Reader) (*Spec, error) {
	var s Spec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decode page map")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open page map")
	}
	defer f.Close()

	s, err := Load(f)
	return s, errors.Wrapf(err, "load %s", path)
}

// Validate checks the whole tree. The top-level region may omit its
// selector; it is rooted wherever it is bound.
func (s *Spec) Validate() error {
	return s.validate(s.label(), true)
}

func (s *Spec) label() string {
	if s.Name != "" {
		return s.Name
	}
	return "<root>"
}

func (s *Spec) validate(path string, top bool) error {
	if !top && s.Selector == "" {
		return errors.Errorf("region %s: missing selector", path)
	}
	for _, name := range sortedKeys(s.Elements) {
		if s.Elements[name] == "" {
			return errors.Errorf("element %s.%s: empty selector", path, name)
		}
		if _, ok := s.Regions[name]; ok {
			return errors.Errorf("%s.%s: name used by both an element and a region", path, name)
		}
	}
	for _, name := range sortedKeys(s.Regions) {
		sub := s.Regions[name]
		if sub == nil {
			return errors.Errorf("region %s.%s: empty definition", path, name)
		}
		if err := sub.validate(path+"."+name, false); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
