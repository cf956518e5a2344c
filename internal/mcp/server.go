package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/client"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/render"
	"github.com/pacphi/statusboard/pkg/timefmt"
	"github.com/pacphi/statusboard/pkg/utils"
)

const redacted = "***"

// StatusSource is the read side the tools query. *client.Service implements it.
type StatusSource interface {
	ListWithStatus(ctx context.Context) ([]api.StatusPage, error)
	GetCompanyDetail(ctx context.Context, name string) (*api.CompanyDetail, error)
	Search(ctx context.Context, query string) ([]api.StatusPage, error)
}

// MCPServer exposes the status dashboard over the Model Context Protocol using mark3labs/mcp-go
type MCPServer struct {
	server *server.MCPServer
	cfg    *config.Config
	source StatusSource
	now    func() time.Time
	logger *utils.Logger
}

// NewMCPServer creates a server with all tools and resources registered
func NewMCPServer(cfg *config.Config, source StatusSource, version string, logger *utils.Logger) *MCPServer {
	mcpServer := server.NewMCPServer(
		"Statusboard MCP Server",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s := &MCPServer{
		server: mcpServer,
		cfg:    cfg,
		source: source,
		now:    time.Now,
		logger: logger,
	}

	s.registerTools()
	s.registerResources()

	return s
}

// Start serves requests on stdin/stdout until ctx is cancelled
func (s *MCPServer) Start(ctx context.Context) error {
	s.logger.Info("Starting MCP server")
	return server.NewStdioServer(s.server).Listen(ctx, os.Stdin, os.Stdout)
}

// registerTools registers all available tools with the MCP server
func (s *MCPServer) registerTools() {
	formatOpt := mcp.WithString("format",
		mcp.Description("Output format: json (default), yaml, csv, text or table"),
		mcp.Enum("json", "yaml", "csv", "text", "table"),
	)
	languageOpt := mcp.WithString("language",
		mcp.Description("Language for durations and labels: cs (default) or en"),
		mcp.Enum("cs", "en"),
	)

	listTool := mcp.NewTool("list_status_pages",
		mcp.WithDescription("List all monitored external services with their current status and time since the last check"),
		formatOpt,
		languageOpt,
	)
	s.server.AddTool(listTool, s.handleListTool)

	statusTool := mcp.NewTool("get_company_status",
		mcp.WithDescription("Show the current status and incident history of one service"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Status page name, e.g. payu")),
		formatOpt,
		languageOpt,
	)
	s.server.AddTool(statusTool, s.handleStatusTool)

	searchTool := mcp.NewTool("search_status_pages",
		mcp.WithDescription("Search status pages by name"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		formatOpt,
	)
	s.server.AddTool(searchTool, s.handleSearchTool)

	durationTool := mcp.NewTool("format_duration",
		mcp.WithDescription("Format the time between two ISO-8601 timestamps as an incident duration or a time ago"),
		mcp.WithString("start", mcp.Required(), mcp.Description("Start instant")),
		mcp.WithString("end", mcp.Description("End instant; defaults to now")),
		mcp.WithBoolean("ago", mcp.Description("Phrase the result as time ago")),
		languageOpt,
	)
	s.server.AddTool(durationTool, s.handleDurationTool)
}

// registerResources registers all available resources with the MCP server
func (s *MCPServer) registerResources() {
	configResource := mcp.NewResource(
		"config://current",
		"Current Configuration",
		mcp.WithMIMEType("application/yaml"),
	)
	s.server.AddResource(configResource, s.handleConfigResource)

	helpResource := mcp.NewResource(
		"help://commands",
		"Command Help",
		mcp.WithMIMEType("text/plain"),
	)
	s.server.AddResource(helpResource, s.handleHelpResource)
}

// Tool handlers

func (s *MCPServer) handleListTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := s.renderer(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pages, err := s.source.ListWithStatus(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list status pages: %v", err)), nil
	}

	var out strings.Builder
	if err := r.StatusTable(&out, pages, s.now()); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(out.String()), nil
}

func (s *MCPServer) handleStatusTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, err := s.renderer(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var out strings.Builder
	detail, err := s.source.GetCompanyDetail(ctx, name)
	switch {
	case errors.Is(err, client.ErrNotFound):
		matches, searchErr := s.source.Search(ctx, name)
		if searchErr == nil && len(matches) > 0 {
			if err := r.Suggestions(&out, name, matches); err != nil {
				return nil, err
			}
			return mcp.NewToolResultError(out.String()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("status page %q not found", name)), nil
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("failed to get status of %s: %v", name, err)), nil
	}

	if err := r.CompanyDetail(&out, detail, s.now()); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(out.String()), nil
}

func (s *MCPServer) handleSearchTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, err := s.renderer(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pages, err := s.source.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to search status pages: %v", err)), nil
	}

	var out strings.Builder
	if err := r.SearchResults(&out, query, pages); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(out.String()), nil
}

func (s *MCPServer) handleDurationTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startArg, err := request.RequireString("start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lang, err := timefmt.ParseLanguage(request.GetString("language", string(timefmt.LanguageCzech)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	formatter := timefmt.New(lang)
	endArg := request.GetString("end", "")

	var text string
	if request.GetBool("ago", false) {
		text, err = formatter.TimeAgoBetween(startArg, endArg, s.now())
	} else {
		text, err = formatter.DurationBetween(startArg, endArg, s.now())
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// renderer builds a renderer from the request's format and language, falling back to JSON and the configured language
func (s *MCPServer) renderer(request mcp.CallToolRequest) (*render.Renderer, error) {
	format := config.OutputFormat(request.GetString("format", string(config.FormatJSON)))
	if !format.IsValid() {
		return nil, fmt.Errorf("invalid format %q", format)
	}

	lang, err := timefmt.ParseLanguage(request.GetString("language", s.cfg.Display.Language))
	if err != nil {
		return nil, err
	}

	return render.New(format, timefmt.New(lang), s.cfg.Display.DescriptionLimit), nil
}

// Resource handlers

func (s *MCPServer) handleConfigResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := s.readConfigResource()
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{mcp.TextResourceContents{
		URI:      request.Params.URI,
		MIMEType: "application/yaml",
		Text:     content,
	}}, nil
}

func (s *MCPServer) handleHelpResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{mcp.TextResourceContents{
		URI:      request.Params.URI,
		MIMEType: "text/plain",
		Text:     commandHelp,
	}}, nil
}

// readConfigResource renders the active configuration with secrets masked
func (s *MCPServer) readConfigResource() (string, error) {
	cfg := *s.cfg
	if cfg.API.Token != "" {
		cfg.API.Token = redacted
	}
	if cfg.Notifications.Slack.WebhookURL != "" && !strings.HasPrefix(cfg.Notifications.Slack.WebhookURL, "$") {
		cfg.Notifications.Slack.WebhookURL = redacted
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	return string(data), nil
}

const commandHelp = `Statusboard Commands:

list      - Show all external services with their status
status    - Show current status and incidents of one service
search    - Search status pages by name
watch     - Refresh the overview continuously and notify on changes
tui       - Interactive dashboard
duration  - Format the time between two timestamps
validate  - Validate configuration and API connectivity
info      - Show the effective configuration
setup     - Write or restore the configuration file
test      - Send a test notification or exercise the API

Use --help with any command for detailed usage information.

Examples:
  statusboard list -o json
  statusboard status payu
  statusboard duration 2024-01-05T09:03:00Z 2024-01-05T10:30:00Z
  statusboard watch --refresh 30s
`
