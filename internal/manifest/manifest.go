// Package manifest edits package.json style manifests in place.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

// Script is one entry of the manifest's "scripts" object.
type Script struct {
	Key   string
	Value string
}

// NotFoundError reports a manifest path with no file behind it.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("manifest not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return fs.ErrNotExist
}

// Patcher rewrites manifests on a filesystem.
type Patcher struct {
	fs afero.Fs
}

// New returns a Patcher operating on fsys.
func New(fsys afero.Fs) *Patcher {
	return &Patcher{fs: fsys}
}

// AddScript sets scripts[s.Key] = s.Value in the manifest at path, creating
// the scripts object when missing. Every other field keeps its value and
// position. The file is rewritten with two-space indentation.
func (p *Patcher) AddScript(path string, s Script) error {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &NotFoundError{Path: path, Err: err}
		}
		return fmt.Errorf("reading manifest %s: %w", path, err)
	}

	doc, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	scripts := &object{}
	if raw, ok := doc.get("scripts"); ok && !isNull(raw) {
		scripts, err = decodeObject(raw)
		if err != nil {
			return fmt.Errorf("manifest %s: \"scripts\" is not an object", path)
		}
	}
	value, err := marshal(s.Value)
	if err != nil {
		return err
	}
	scripts.set(s.Key, value)

	encoded, err := scripts.encode()
	if err != nil {
		return err
	}
	doc.set("scripts", encoded)

	out, err := doc.encode()
	if err != nil {
		return err
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, out, "", "  "); err != nil {
		return fmt.Errorf("formatting manifest %s: %w", path, err)
	}
	indented.WriteByte('\n')

	info, err := p.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if err := afero.WriteFile(p.fs, path, indented.Bytes(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// object is a JSON object that remembers key order.
type object struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o *object) get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *object) set(key string, value json.RawMessage) {
	if o.values == nil {
		o.values = map[string]json.RawMessage{}
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *object) encode() (json.RawMessage, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(o.values[k])
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func decodeObject(data []byte) (*object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}
	o := &object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		o.set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after object")
	}
	return o, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// marshal encodes v without escaping HTML characters.
func marshal(v any) (json.RawMessage, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}

// PostinstallScript is the script an example app runs after install to pull
// in the module from the parent directory.
func PostinstallScript(moduleName string) Script {
	return Script{
		Key:   "postinstall",
		Value: "node ../scripts/examples_postinstall.js node_modules/" + moduleName,
	}
}
