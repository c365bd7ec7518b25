package pipeline

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Properties is the configuration an action is given, by property name.
type Properties map[string]string

// Get returns the value of name, or "" when it is unset.
func (p Properties) Get(name string) string {
	return p[name]
}

// GetOrDefault returns the value of name, or def when it is unset or empty.
func (p Properties) GetOrDefault(name, def string) string {
	if v := p[name]; v != "" {
		return v
	}
	return def
}

// Required returns the value of name, or an error when it is unset or empty.
func (p Properties) Required(name string) (string, error) {
	v := p[name]
	if v == "" {
		return "", errors.Errorf("required property %q is not set", name)
	}
	return v, nil
}

// Names returns the property names, sorted.
func (p Properties) Names() []string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseProperties splits a comma separated string of key value pairs,
// e.g. "k1=v1,k2=v2", into Properties. Malformed pairs are skipped.
func ParseProperties(commaSep string) Properties {
	p := Properties{}
	for _, pair := range strings.Split(commaSep, ",") {
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		p[kv[0]] = kv[1]
	}
	return p
}

// With returns a copy of p overlaid with other.
func (p Properties) With(other Properties) Properties {
	result := make(Properties, len(p)+len(other))
	for k, v := range p {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}
