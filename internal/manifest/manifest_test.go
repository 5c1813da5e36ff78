package manifest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const path = "/example/package.json"

func setup(t *testing.T, content string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	return fsys
}

func contents(t *testing.T, fsys afero.Fs) string {
	t.Helper()
	b, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(b)
}

func TestAddScriptCreatesScriptsObject(t *testing.T) {
	fsys := setup(t, `{"name":"example","version":"0.0.1"}`)

	require.NoError(t, New(fsys).AddScript(path, Script{Key: "postinstall", Value: "node x.js"}))
	assert.Equal(t, `{
  "name": "example",
  "version": "0.0.1",
  "scripts": {
    "postinstall": "node x.js"
  }
}
`, contents(t, fsys))
}

func TestAddScriptTreatsNullScriptsAsMissing(t *testing.T) {
	fsys := setup(t, `{"name":"example","scripts":null,"private":true}`)

	require.NoError(t, New(fsys).AddScript(path, Script{Key: "postinstall", Value: "node x.js"}))
	assert.Equal(t, `{
  "name": "example",
  "scripts": {
    "postinstall": "node x.js"
  },
  "private": true
}
`, contents(t, fsys))
}

func TestAddScriptPreservesOrderAndOtherKeys(t *testing.T) {
	fsys := setup(t, `{
  "name": "example",
  "scripts": {"start": "react-native start", "test": "jest && echo <done>"},
  "dependencies": {"react": "18.2.0"},
  "private": true
}`)

	require.NoError(t, New(fsys).AddScript(path, Script{Key: "postinstall", Value: "node ../scripts/examples_postinstall.js node_modules/react-native-maps"}))
	assert.Equal(t, `{
  "name": "example",
  "scripts": {
    "start": "react-native start",
    "test": "jest && echo <done>",
    "postinstall": "node ../scripts/examples_postinstall.js node_modules/react-native-maps"
  },
  "dependencies": {
    "react": "18.2.0"
  },
  "private": true
}
`, contents(t, fsys))
}

func TestAddScriptReplacesOnlyThatKey(t *testing.T) {
	fsys := setup(t, `{"scripts":{"a":"1","b":"2","c":"3"}}`)

	require.NoError(t, New(fsys).AddScript(path, Script{Key: "b", Value: "two"}))
	assert.Equal(t, "{\n  \"scripts\": {\n    \"a\": \"1\",\n    \"b\": \"two\",\n    \"c\": \"3\"\n  }\n}\n", contents(t, fsys))
}

func TestAddScriptIsIdempotent(t *testing.T) {
	fsys := setup(t, `{"name":"x"}`)
	p := New(fsys)
	s := Script{Key: "build", Value: "tsc && node dist/<main>.js"}

	require.NoError(t, p.AddScript(path, s))
	first := contents(t, fsys)
	require.NoError(t, p.AddScript(path, s))
	assert.Equal(t, first, contents(t, fsys))
	assert.Contains(t, first, `"tsc && node dist/<main>.js"`)
}

func TestAddScriptMissingFile(t *testing.T) {
	err := New(afero.NewMemMapFs()).AddScript("/nope/package.json", Script{Key: "a", Value: "b"})

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "/nope/package.json", nf.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAddScriptRejectsInvalidManifests(t *testing.T) {
	tests := []struct {
		desc    string
		content string
	}{
		{"not json", `name = "x"`},
		{"array root", `["a"]`},
		{"scripts not object", `{"scripts": "npm test"}`},
		{"scripts array", `{"scripts": ["npm test"]}`},
		{"scripts number", `{"scripts": 0}`},
		{"trailing data", `{"a":1} {"b":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			fsys := setup(t, tt.content)
			err := New(fsys).AddScript(path, Script{Key: "a", Value: "b"})
			require.Error(t, err)
			var nf *NotFoundError
			assert.False(t, errors.As(err, &nf))
			assert.Equal(t, tt.content, contents(t, fsys), "file must be left untouched")
		})
	}
}

func TestPostinstallScript(t *testing.T) {
	s := PostinstallScript("react-native-maps")
	assert.Equal(t, "postinstall", s.Key)
	assert.Equal(t, "node ../scripts/examples_postinstall.js node_modules/react-native-maps", s.Value)
}
