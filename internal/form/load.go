package form

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questionnaire.yaml
var defaultQuestionnaire []byte

type document struct {
	Title    string        `yaml:"title"`
	Sections []sectionSpec `yaml:"sections"`
}

type sectionSpec struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Fields      []fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Name         string       `yaml:"name"`
	Label        string       `yaml:"label"`
	Help         string       `yaml:"help"`
	Placeholder  string       `yaml:"placeholder"`
	Kind         string       `yaml:"kind"`
	Required     bool         `yaml:"required"`
	Group        string       `yaml:"group"`
	CheckedValue string       `yaml:"value"`
	Options      []optionSpec `yaml:"options"`
}

type optionSpec struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Default returns a fresh copy of the built-in questionnaire.
func Default() *Form {
	f, err := Load(bytes.NewReader(defaultQuestionnaire))
	if err != nil {
		panic(fmt.Sprintf("built-in questionnaire: %v", err))
	}
	return f
}

// LoadFile reads a questionnaire definition from a YAML file.
func LoadFile(path string) (*Form, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening questionnaire: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Load parses a YAML questionnaire definition.
func Load(r io.Reader) (*Form, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parsing questionnaire: empty document")
		}
		return nil, fmt.Errorf("parsing questionnaire: %w", err)
	}
	return build(doc)
}

func build(doc document) (*Form, error) {
	if len(doc.Sections) == 0 {
		return nil, errors.New("questionnaire has no sections")
	}

	f := &Form{Title: strings.TrimSpace(doc.Title)}
	titles := make(map[string]bool)

	for i, ss := range doc.Sections {
		title := strings.TrimSpace(ss.Title)
		if title == "" {
			return nil, fmt.Errorf("section %d: missing title", i+1)
		}
		if titles[title] {
			return nil, fmt.Errorf("section %d: duplicate title %q", i+1, title)
		}
		titles[title] = true
		if len(ss.Fields) == 0 {
			return nil, fmt.Errorf("section %q: no fields", title)
		}

		sec := &Section{Index: i, Title: title, Description: strings.TrimSpace(ss.Description)}
		for j, fs := range ss.Fields {
			fld, err := buildField(fs)
			if err != nil {
				return nil, fmt.Errorf("section %q field %d: %w", title, j+1, err)
			}
			sec.Fields = append(sec.Fields, fld)
		}
		f.Sections = append(f.Sections, sec)
	}

	return f, nil
}

func buildField(fs fieldSpec) (*Field, error) {
	name := strings.TrimSpace(fs.Name)
	if name == "" {
		return nil, errors.New("missing name")
	}

	kind := Kind(strings.ToLower(strings.TrimSpace(fs.Kind)))
	if kind == "" {
		kind = KindText
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%s: unknown kind %q", name, fs.Kind)
	}

	fld := &Field{
		Name:         name,
		Label:        fs.Label,
		Help:         fs.Help,
		Placeholder:  fs.Placeholder,
		Kind:         kind,
		Required:     fs.Required,
		Group:        strings.TrimSpace(fs.Group),
		CheckedValue: fs.CheckedValue,
	}
	if fld.Label == "" {
		fld.Label = name
	}

	for _, opt := range fs.Options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		fld.Options = append(fld.Options, Option{Value: opt.Value, Label: label})
	}

	if (kind == KindRadio || kind == KindSelect) && len(fld.Options) == 0 {
		return nil, fmt.Errorf("%s: %s field needs options", name, kind)
	}
	return fld, nil
}
