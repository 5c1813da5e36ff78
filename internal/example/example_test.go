package example

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moasq/rnmodule/internal/options"
	"github.com/moasq/rnmodule/internal/process"
	"github.com/moasq/rnmodule/internal/render"
	"github.com/moasq/rnmodule/internal/templates"
	"github.com/moasq/rnmodule/internal/toolcheck"
)

func config(t *testing.T) options.Config {
	t.Helper()
	cfg, _, err := options.Normalize(options.Options{Name: "maps", GenerateExample: true}, options.BuiltinDefaults())
	require.NoError(t, err)
	return cfg
}

func bootstrapper(t *testing.T, rec *process.Recorder, fsys afero.Fs) *Bootstrapper {
	checker := toolcheck.New(rec, toolcheck.DefaultTools()...).WithOutput(&bytes.Buffer{})
	return New(checker, rec, render.New(fsys), templates.Example(), zaptest.NewLogger(t))
}

func TestPlanOrder(t *testing.T) {
	b := bootstrapper(t, process.NewRecorder(), afero.NewMemMapFs())
	var names []string
	for _, s := range b.Plan("/work/react-native-maps", config(t), new([]string)) {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{StepCheckTools, StepInitExample, StepRenderExample}, names)
}

func TestRunScaffoldsAndRenders(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rec := process.NewRecorder()
	cfg := config(t)
	moduleDir := "/work/react-native-maps"

	written, err := bootstrapper(t, rec, fsys).Run(context.Background(), moduleDir, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"npx react-native --version",
		"yarn --version",
		"npx react-native init example --template react-native@latest",
	}, rec.Commands())
	calls := rec.Calls()
	assert.Equal(t, moduleDir, calls[2].Dir)

	assert.Contains(t, written, filepath.Join(moduleDir, "example", "App.js"))
	app, err := afero.ReadFile(fsys, filepath.Join(moduleDir, "example", "App.js"))
	require.NoError(t, err)
	assert.Contains(t, string(app), "import Maps from 'react-native-maps'")
}

func TestRunReportsEachFinishedStep(t *testing.T) {
	rec := process.NewRecorder().On("npx react-native init example --template react-native@latest", process.Reply{Err: errors.New("exit status 1")})

	var done []string
	_, err := bootstrapper(t, rec, afero.NewMemMapFs()).Run(context.Background(), "/work/m", config(t), func(step string) {
		done = append(done, step)
	})
	require.Error(t, err)
	assert.Equal(t, []string{StepCheckTools}, done)
}

func TestRunStopsWhenToolMissing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rec := process.NewRecorder().On("yarn --version", process.Reply{Err: errors.New("not found")})

	written, err := bootstrapper(t, rec, fsys).Run(context.Background(), "/work/m", config(t), nil)
	assert.Nil(t, written)

	var se *StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StepCheckTools, se.Step)
	var de *toolcheck.DependencyError
	assert.True(t, errors.As(err, &de))
	assert.NotContains(t, rec.Commands(), "npx react-native init example --template react-native@latest")

	exists, err := afero.DirExists(fsys, "/work/m/example")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRunReportsInitFailure(t *testing.T) {
	rec := process.NewRecorder().On("npx react-native init example --template react-native@latest", process.Reply{Err: errors.New("exit status 1")})

	_, err := bootstrapper(t, rec, afero.NewMemMapFs()).Run(context.Background(), "/work/m", config(t), nil)
	var se *StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StepInitExample, se.Step)
}
