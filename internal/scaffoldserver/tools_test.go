package scaffoldserver

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moasq/rnmodule/internal/manifest"
	"github.com/moasq/rnmodule/internal/options"
	"github.com/moasq/rnmodule/internal/pipeline"
	"github.com/moasq/rnmodule/internal/process"
)

func newServer(t *testing.T, fsys afero.Fs, rec *process.Recorder) *Server {
	t.Helper()
	return New(fsys, rec, zaptest.NewLogger(t), options.BuiltinDefaults(), "/work", "0.0.0-test")
}

func TestMCPRegistersTools(t *testing.T) {
	assert.NotPanics(t, func() {
		newServer(t, afero.NewMemMapFs(), process.NewRecorder()).MCP()
	})
}

func TestCreateModule(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rec := process.NewRecorder()

	_, out, err := newServer(t, fsys, rec).handleCreateModule(context.Background(), nil, createModuleInput{
		Name:      "camera roll",
		Platforms: []string{"ios"},
		UseSwift:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/work", "react-native-camera-roll"), out.ModuleDir)
	assert.Contains(t, out.Files, filepath.Join(out.ModuleDir, "ios", "CameraRoll.swift"))
	assert.Empty(t, out.Manifest)
	assert.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Message, "react-native-camera-roll")
	assert.Empty(t, rec.Commands())
}

func TestCreateModuleWithExamplePatchesManifest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rec := process.NewRecorder().On("npx react-native init example --template react-native@latest", process.Reply{
		Effect: func(c process.Command) error {
			return afero.WriteFile(fsys, filepath.Join(c.Dir, "example", "package.json"), []byte(`{"name":"example"}`), 0o644)
		},
	})

	_, out, err := newServer(t, fsys, rec).handleCreateModule(context.Background(), nil, createModuleInput{
		Name:              "maps",
		PackageIdentifier: "io.acme.maps",
		GenerateExample:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/work", "react-native-maps", "example", "package.json"), out.Manifest)

	b, err := afero.ReadFile(fsys, out.Manifest)
	require.NoError(t, err)
	assert.Contains(t, string(b), "node_modules/react-native-maps")
}

func TestCreateModuleReportsStageErrors(t *testing.T) {
	rec := process.NewRecorder().On("yarn --version", process.Reply{Err: errors.New("exit status 127")})

	_, _, err := newServer(t, afero.NewMemMapFs(), rec).handleCreateModule(context.Background(), nil, createModuleInput{
		Name:            "maps",
		GenerateExample: true,
	})
	var se *pipeline.StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, pipeline.StageToolsChecked, se.Stage)
}

func TestAddScriptResolvesRelativePaths(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/work/app/package.json", []byte(`{"name":"app"}`), 0o644))

	_, out, err := newServer(t, fsys, process.NewRecorder()).handleAddScript(context.Background(), nil, addScriptInput{
		Manifest: "app/package.json",
		Key:      "lint",
		Value:    "eslint .",
	})
	require.NoError(t, err)
	assert.Contains(t, out.Message, "scripts.lint")

	b, err := afero.ReadFile(fsys, "/work/app/package.json")
	require.NoError(t, err)
	assert.Contains(t, string(b), `"lint": "eslint ."`)
}

func TestAddScriptErrors(t *testing.T) {
	s := newServer(t, afero.NewMemMapFs(), process.NewRecorder())

	_, _, err := s.handleAddScript(context.Background(), nil, addScriptInput{Manifest: "/missing.json", Key: "a"})
	var nf *manifest.NotFoundError
	assert.True(t, errors.As(err, &nf))

	_, _, err = s.handleAddScript(context.Background(), nil, addScriptInput{Manifest: "/missing.json"})
	assert.ErrorContains(t, err, "key is required")
}

func TestListTemplates(t *testing.T) {
	s := newServer(t, afero.NewMemMapFs(), process.NewRecorder())

	_, out, err := s.handleListTemplates(context.Background(), nil, listTemplatesInput{Name: "maps", Platforms: []string{"android"}})
	require.NoError(t, err)
	var paths []string
	for _, e := range out.Templates {
		assert.NotEqual(t, options.PlatformIOS, e.Platform)
		paths = append(paths, e.Path)
	}
	assert.Contains(t, paths, "android/build.gradle")

	_, out, err = s.handleListTemplates(context.Background(), nil, listTemplatesInput{Example: true})
	require.NoError(t, err)
	assert.Len(t, out.Templates, 3)

	_, _, err = s.handleListTemplates(context.Background(), nil, listTemplatesInput{Platforms: []string{"web"}})
	var ve *options.ValidationError
	assert.True(t, errors.As(err, &ve))
}
