package scaffoldserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/moasq/rnmodule/internal/options"
	"github.com/moasq/rnmodule/internal/process"
)

// Server exposes module generation as MCP tools.
type Server struct {
	fs       afero.Fs
	runner   process.Runner
	logger   *zap.Logger
	defaults options.Defaults
	workDir  string
	version  string
}

// New returns a Server generating modules below workDir.
func New(fsys afero.Fs, runner process.Runner, logger *zap.Logger, defaults options.Defaults, workDir, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{fs: fsys, runner: runner, logger: logger, defaults: defaults, workDir: workDir, version: version}
}

// MCP builds the protocol server with every tool registered.
func (s *Server) MCP() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "rnmodule",
			Version: "v" + s.version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_module",
		Description: "Create a React Native native module in a new directory named after the module. Renders package.json, the JS entry point, and the Android and iOS sources for the requested platforms. With generate_example it also checks that react-native and yarn are installed, runs `npx react-native init` for an example app and wires the app to the module. Example: create_module(name: \"camera roll\", platforms: [\"ios\"], use_swift: true)",
	}, s.handleCreateModule)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_script",
		Description: "Set an entry in the \"scripts\" object of a package.json file, creating the object if needed. Other fields keep their order. Example: add_script(manifest: \"example/package.json\", key: \"postinstall\", value: \"node ../scripts/examples_postinstall.js\")",
	}, s.handleAddScript)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List the template files that create_module would render for the given platforms, with the output path each one resolves to. Read-only.",
	}, s.handleListTemplates)

	return server
}

// Run serves over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.MCP().Run(ctx, &mcp.StdioTransport{})
}
