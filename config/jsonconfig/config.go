package jsonconfig

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"regexp"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/icewire/ice"
)

// Schema holds the different Implementations's the client wants to configure
type Schema map[string]Implementations

// EmptySchema returns an empty Schema, needed if you don't allow configuration
func EmptySchema() Schema {
	return map[string]Implementations{}
}

// Implementations maps the the names of implementations to the Implementation
// As a special case, "" maps to a default implementation that will not be unmarshal'ed,
// and so the Implementation will be used as-is.
type Implementations map[string]Implementation

type Implementation interface {
	// The Implementation needs to do 3 things:
	// 1) parse the JSON config
	// 2) add the relevant providers to the ice MagicBag
	// 3) print its configuration
	// 1 & 3 are handled implicitly (ugh) by json.(Un)marshal
	// 2 is handled by being an ice Module
	ice.Module
}

type Configuration map[string]ice.Module

// Configuration is itself a Module, that installs each Impl as a Module
// (in Design Patterns terminology, it's a Composite)
func (c Configuration) Install(bag *ice.MagicBag) {
	for _, v := range c {
		v.Install(bag)
	}
}

// Merge returns a Schema holding the components of both; other wins on a name clash.
func (schema Schema) Merge(other Schema) Schema {
	result := Schema{}
	for k, v := range schema {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

var emptyJson = []byte("{}")

// Parse configures every component of the schema. Components the text leaves out get
// their "" default.
func (schema Schema) Parse(text []byte) (Configuration, error) {
	return schema.parse(text, true)
}

// ParsePresent configures only the components named in text, so whatever the text leaves
// out stays unbound and can be supplied by a parent container.
func (schema Schema) ParsePresent(text []byte) (Configuration, error) {
	return schema.parse(text, false)
}

func (schema Schema) parse(text []byte, defaults bool) (Configuration, error) {
	var parsedConfig map[string]json.RawMessage
	if len(text) == 0 {
		text = emptyJson
	}
	err := json.Unmarshal(text, &parsedConfig)
	if err != nil {
		return nil, fmt.Errorf("Couldn't parse top-level config: %v", err)
	}
	for name := range parsedConfig {
		if _, ok := schema[name]; !ok {
			return nil, fmt.Errorf("Unknown component %q in config", name)
		}
	}

	result := Configuration(make(map[string]ice.Module))
	// Parse each option (aka Implementations, which isn't a valid variable name)
	for optionName, impls := range schema {
		optionText, present := parsedConfig[optionName]
		if !present && !defaults {
			continue
		}
		// Parse this Implementations's JSON just enough to get the type
		implName, err := parseType(optionText)
		if err != nil {
			return nil, fmt.Errorf("Error parsing type for Implementations %v: %v", optionName, err)
		}
		impl, ok := impls[implName]
		if !ok {
			return nil, fmt.Errorf("Error parsing Implementations %v: %q is not a valid Implementation", optionName, implName)
		}
		impl = fresh(impl)
		if len(optionText) > 0 {
			// Now parse it fully, with the right Implementation
			err = json.Unmarshal(optionText, &impl)
			if err != nil {
				return nil, fmt.Errorf("Error parsing variable %v: %v", optionName, err)
			}
		}
		result[optionName] = impl
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("config parsed to:\n%s", spew.Sdump(result))
	}
	return result, nil
}

// fresh copies a pointer Implementation so parsing never writes into the Schema's instance.
func fresh(impl Implementation) Implementation {
	v := reflect.ValueOf(impl)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return impl
	}
	c := reflect.New(v.Type().Elem())
	c.Elem().Set(v.Elem())
	return c.Interface().(Implementation)
}

// Find the type, which is simply the string value for the key "Type"
func parseType(data json.RawMessage) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	var t struct{ Type string }
	err := json.Unmarshal(data, &t)
	if err != nil {
		return "", err
	}
	return t.Type, nil
}

// AssetFunc loads a named resource.
type AssetFunc func(name string) ([]byte, error)

// DirAsset reads resources as files under dir.
func DirAsset(dir string) AssetFunc {
	return func(name string) ([]byte, error) {
		return ioutil.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	}
}

// MapAsset serves resources from memory, keyed by name.
func MapAsset(assets map[string]string) AssetFunc {
	return func(name string) ([]byte, error) {
		text, ok := assets[name]
		if !ok {
			return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
		}
		return []byte(text), nil
	}
}

var assetName = regexp.MustCompile(`^[[:alnum:]_\-/]*\.[[:alnum:]]*$`)

// IsAssetName reports whether GetConfigText would treat configFlag as a resource name.
func IsAssetName(configFlag string) bool {
	return assetName.MatchString(configFlag)
}

// GetConfigText finds the right text for a configFlag.
// If configFlag looks like a filename (of the form foo.bar, optionally under a/b/),
// read it as an asset.
// Otherwise, assume it's the literal json text.
func GetConfigText(configFlag string, asset AssetFunc) ([]byte, error) {
	if IsAssetName(configFlag) {
		if asset == nil {
			return nil, fmt.Errorf("no resource loader for config %v", configFlag)
		}
		log.Debugf("reading config resource %v", configFlag)
		configText, err := asset(configFlag)
		if err != nil {
			return nil, errors.Wrapf(err, "Error Loading Config Resource %v", configFlag)
		}
		return configText, nil
	}
	log.Debugf("using literal JSON config: %v", configFlag)
	return []byte(configFlag), nil
}
