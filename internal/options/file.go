package options

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed schema/options.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Issue is a single schema violation in an options file.
type Issue struct {
	Path    string // instance location, e.g. "/platforms/0"
	Keyword string
	Message string
}

// FileError reports an options file that does not match the schema.
type FileError struct {
	Path   string
	Issues []Issue
}

func (e *FileError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		loc := is.Path
		if loc == "" {
			loc = "/"
		}
		parts = append(parts, loc+": "+is.Message)
	}
	return fmt.Sprintf("options file %s is invalid: %s", e.Path, strings.Join(parts, "; "))
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling options schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("options.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding options schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("options.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling options schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// LoadFile reads a YAML options file, validates it against the embedded
// schema and decodes it.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading options file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse validates and decodes YAML options content. name is only used in
// error messages.
func Parse(name string, data []byte) (Options, error) {
	schema, err := getSchema()
	if err != nil {
		return Options{}, err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Options{}, fmt.Errorf("parsing options file %s: %w", name, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return Options{}, fmt.Errorf("converting options file %s to JSON: %w", name, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return Options{}, fmt.Errorf("preparing options file %s for validation: %w", name, err)
	}

	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return Options{}, fmt.Errorf("validating options file %s: %w", name, err)
		}
		return Options{}, &FileError{Path: name, Issues: collectIssues(ve)}
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("decoding options file %s: %w", name, err)
	}
	return opts, nil
}

func collectIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		is := Issue{}
		if len(e.InstanceLocation) > 0 {
			is.Path = "/" + strings.Join(e.InstanceLocation, "/")
		}
		if e.ErrorKind != nil {
			if kw := e.ErrorKind.KeywordPath(); len(kw) > 0 {
				is.Keyword = kw[len(kw)-1]
			}
			is.Message = e.ErrorKind.LocalizedString(printer)
		}
		issues = append(issues, is)
	}
	walk(ve)
	if len(issues) == 0 {
		issues = append(issues, Issue{Message: ve.Error()})
	}
	return issues
}

// normalizeYAML converts yaml.v3 decoded values into JSON-compatible types.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}
