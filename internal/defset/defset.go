// Package defset loads dispatch-table definition files: YAML documents
// declaring ignored types, conversions and functions whose signatures bind
// to named operations from the built-in op table. The CLI compiles a
// definition file into one callable per declared function.
package defset

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/typed/pkg/typed"
)

// ConversionDef declares one conversion in a definition file.
type ConversionDef struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	With string `yaml:"with"`
}

// File is the parsed shape of a definition file.
type File struct {
	Name        string                       `yaml:"name"`
	Ignore      []string                     `yaml:"ignore"`
	Conversions []ConversionDef              `yaml:"conversions"`
	Functions   map[string]map[string]string `yaml:"functions"`
}

// Parse decodes a definition file from YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("cannot parse definition file: %w", err)
	}
	return &f, nil
}

// Load reads and parses a definition file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read definition file: %w", err)
	}
	return Parse(data)
}

// Build applies the file's registrations to the engine and compiles every
// declared function. Conversions register in file order, so their declared
// priority matches their position in the document.
func (f *File) Build(e *typed.Engine) (map[string]*typed.Callable, error) {
	if len(f.Ignore) > 0 {
		e.Ignore(f.Ignore...)
	}
	for _, cd := range f.Conversions {
		convert, err := LookupConverter(cd.With)
		if err != nil {
			return nil, err
		}
		if err := e.AddConversion(typed.Conversion{From: cd.From, To: cd.To, Convert: convert}); err != nil {
			return nil, fmt.Errorf("conversion %s -> %s: %w", cd.From, cd.To, err)
		}
	}

	callables := make(map[string]*typed.Callable, len(f.Functions))
	for _, name := range f.FunctionNames() {
		bindings := f.Functions[name]
		sigs := make(typed.Signatures, len(bindings))
		for sig, opName := range bindings {
			op, err := LookupOp(opName)
			if err != nil {
				return nil, fmt.Errorf("function %s, signature %q: %w", name, sig, err)
			}
			sigs[sig] = op
		}
		c, err := e.From(name, sigs)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", name, err)
		}
		callables[name] = c
	}
	return callables, nil
}

// FunctionNames returns the declared function names, sorted for
// deterministic build and listing order.
func (f *File) FunctionNames() []string {
	names := make([]string, 0, len(f.Functions))
	for name := range f.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
