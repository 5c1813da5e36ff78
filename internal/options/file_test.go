package options

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidOptionsFile(t *testing.T) {
	data := []byte(`
name: camera roll
prefix: RN
platforms: [ios]
view: true
useSwift: true
generateExample: true
exampleName: demo
exampleReactNativeTemplate: react-native@0.74.0
`)
	opts, err := Parse("module.yml", data)
	require.NoError(t, err)
	assert.Equal(t, "camera roll", opts.Name)
	assert.Equal(t, "RN", opts.Prefix)
	assert.Equal(t, []string{"ios"}, opts.Platforms)
	assert.True(t, opts.View)
	assert.True(t, opts.UseSwift)
	assert.True(t, opts.GenerateExample)
	assert.Equal(t, "demo", opts.ExampleName)
	assert.Equal(t, "react-native@0.74.0", opts.ExampleTemplate)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		desc string
		data string
		path string
	}{
		{"missing name", "prefix: RN\n", ""},
		{"unknown platform", "name: a\nplatforms: [windows]\n", "/platforms/0"},
		{"wrong type", "name: a\nview: yes-please\n", "/view"},
		{"unknown key", "name: a\ncolour: red\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := Parse("module.yml", []byte(tt.data))
			var fe *FileError
			require.True(t, errors.As(err, &fe), "expected FileError, got %v", err)
			require.NotEmpty(t, fe.Issues)
			if tt.path != "" {
				var paths []string
				for _, is := range fe.Issues {
					paths = append(paths, is.Path)
				}
				assert.Contains(t, paths, tt.path)
			}
			assert.Contains(t, fe.Error(), "module.yml")
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse("broken.yml", []byte("name: [unclosed\n"))
	require.Error(t, err)
	var fe *FileError
	assert.False(t, errors.As(err, &fe))
}

func TestLoadFileReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: maps\nplatforms: [android, ios]\n"), 0o644))

	opts, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "maps", opts.Name)
	assert.Equal(t, []string{"android", "ios"}, opts.Platforms)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
