package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/panbanda/sprintlens/internal/report"
	"github.com/panbanda/sprintlens/internal/vcs"
	"github.com/panbanda/sprintlens/pkg/snapshot"
)

// Server wraps the MCP server and registers the sprint analysis tools.
type Server struct {
	server   *mcp.Server
	snapshot string
	loader   *snapshot.Loader
	opener   vcs.Opener
	settings report.Settings
	log      zerolog.Logger
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithSnapshotPath sets the snapshot used when a tool call names none.
func WithSnapshotPath(path string) Option {
	return func(s *Server) {
		s.snapshot = path
	}
}

// WithLoader sets the snapshot loader.
func WithLoader(l *snapshot.Loader) Option {
	return func(s *Server) {
		s.loader = l
	}
}

// WithOpener sets the git opener used for revision reads.
func WithOpener(o vcs.Opener) Option {
	return func(s *Server) {
		s.opener = o
	}
}

// WithSettings sets the analyzer tuning.
func WithSettings(settings report.Settings) Option {
	return func(s *Server) {
		s.settings = settings
	}
}

// WithLogger sets the diagnostic logger. It must not write to stdout.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithClock overrides the reference instant for days-left figures.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates a new MCP server with all sprintlens tools registered.
func NewServer(version string, opts ...Option) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{
		server: mcp.NewServer(
			&mcp.Implementation{Name: "sprintlens", Version: version},
			nil,
		),
		snapshot: "snapshot.json",
		loader:   snapshot.NewLoader(),
		opener:   vcs.NewGitOpener(),
		settings: report.DefaultSettings(),
		log:      zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info().Str("snapshot", s.snapshot).Msg("mcp server starting")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calculate_progress",
		Description: describeProgress(),
	}, s.handleCalculateProgress)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_burndown",
		Description: describeBurndown(),
	}, s.handleGenerateBurndown)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "engineer_utilization",
		Description: describeUtilization(),
	}, s.handleEngineerUtilization)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sprint_health",
		Description: describeHealth(),
	}, s.handleSprintHealth)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "velocity_trend",
		Description: describeVelocity(),
	}, s.handleVelocityTrend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "team_metrics",
		Description: describeTeam(),
	}, s.handleTeamMetrics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_assignments",
		Description: describeAssign(),
	}, s.handleSuggestAssignments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "personal_dashboard",
		Description: describeDashboard(),
	}, s.handlePersonalDashboard)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sprint_report",
		Description: describeReport(),
	}, s.handleSprintReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_permission",
		Description: describePermission(),
	}, s.handleCheckPermission)
}
