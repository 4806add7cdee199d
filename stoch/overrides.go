package stoch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overrides is the loaded sampling-mode override configuration: a flat map
// from override key to mode. Keys take three shapes, in increasing
// specificity:
//
//	ALL                  every item in the run
//	<Owner>.ALL          every item under one owning class
//	<Owner>.<id>         one exact item
//
// An empty map, or one containing only ALL = NORMAL, is equivalent to "no
// overrides".
type Overrides map[string]SampleMode

// Resolve returns the effective mode for Owner.id. The three key layers are
// applied in fixed order (ALL, then Owner.ALL, then Owner.id) with each
// later, more specific layer overriding the previous; keys absent from the
// configuration are skipped, and absence of all three yields ModeNormal.
func (o Overrides) Resolve(owner, id string) SampleMode {
	mode := ModeNormal
	if m, ok := o[AllGroup]; ok {
		mode = m
	}
	if m, ok := o[owner+"."+AllGroup]; ok {
		mode = m
	}
	if m, ok := o[owner+"."+id]; ok {
		mode = m
	}
	return mode
}

// ParseOverrides reads the flat properties form the external configuration
// layer supplies: one "key = value" pair per line, values being the literal
// mode tokens, with #- or !-prefixed comment lines and blank lines ignored.
func ParseOverrides(r io.Reader) (Overrides, error) {
	out := Overrides{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, invalidParamf("override line %d has no '=': %q", lineNo, line)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, invalidParamf("override line %d has an empty key", lineNo)
		}
		mode, err := ParseSampleMode(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("override line %d: %w", lineNo, err)
		}
		if _, dup := out[key]; dup {
			return nil, invalidParamf("override key %q appears twice (line %d)", key, lineNo)
		}
		out[key] = mode
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadOverrides reads the properties form from a file.
func LoadOverrides(path string) (Overrides, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open overrides: %w", err)
	}
	defer f.Close()
	ov, err := ParseOverrides(f)
	if err != nil {
		return nil, fmt.Errorf("overrides %s: %w", path, err)
	}
	return ov, nil
}

// LoadOverridesYAML reads the YAML form: a document whose `overrides` key
// maps override keys to mode tokens.
func LoadOverridesYAML(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	var doc struct {
		Overrides map[string]string `yaml:"overrides"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("overrides %s: %w", path, err)
	}
	out := Overrides{}
	for key, token := range doc.Overrides {
		mode, err := ParseSampleMode(token)
		if err != nil {
			return nil, fmt.Errorf("overrides %s, key %q: %w", path, key, err)
		}
		out[key] = mode
	}
	return out, nil
}
