package container

import (
	"context"
	"net"

	"golang.org/x/sync/errgroup"

	"kuesioner/adapters/chart"
	"kuesioner/adapters/sheets"
	"kuesioner/app"
	"kuesioner/internal"
	"kuesioner/internal/api"
	"kuesioner/internal/config"
	"kuesioner/internal/errors"
	"kuesioner/ui"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Sheet access
	Sheets *sheets.Client

	// Services
	Tally       *app.TallyService
	Submissions *app.SubmissionService
	Renderer    *chart.Renderer

	// Serving components, set by InitServer
	SSEHub *api.SSEHub
	Poller *app.Poller
	Server *ui.Server
}

// New creates a container with the sheet client and services wired up
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewLogger(internal.ParseLevel(cfg.Log.Level))
	}

	sheetConfig := sheets.DefaultConfig()
	sheetConfig.EndpointURL = cfg.Sheet.EndpointURL
	sheetConfig.DataPath = cfg.Sheet.DataPath
	sheetConfig.Timeout = cfg.Sheet.Timeout

	client, err := sheets.NewClient(sheetConfig, sheets.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrapf(errors.ConfigInvalid(err.Error()), "sheet client for %q", cfg.Sheet.EndpointURL)
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Sheets:      client,
		Tally:       app.NewTallyService(client, logger),
		Submissions: app.NewSubmissionService(client, cfg.Form.RequiredFields, logger),
		Renderer:    chart.NewRenderer(),
	}, nil
}

// InitServer creates the SSE hub, the poller feeding it and the HTTP server
func (c *Container) InitServer() {
	c.SSEHub = api.NewSSEHub(c.Logger)
	broadcaster := api.NewSnapshotBroadcaster(c.SSEHub)
	c.Poller = app.NewPoller(c.Tally, c.Config.Poll.Interval, broadcaster.Publish, c.Logger)
	c.Server = ui.NewServer(ui.Dependencies{
		Tally:       c.Tally,
		Submissions: c.Submissions,
		Renderer:    c.Renderer,
		Hub:         c.SSEHub,
		Logger:      c.Logger,
	}, c.Config.Server.GinMode)
}

// Serve runs the HTTP server and the poller until ctx is cancelled or either fails
func (c *Container) Serve(ctx context.Context) error {
	if c.Server == nil {
		c.InitServer()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.Server.Run(ctx, net.JoinHostPort("", c.Config.Server.Port))
	})
	g.Go(func() error {
		return c.Poller.Run(ctx)
	})
	return g.Wait()
}

// Close stops the SSE hub and flushes the logger
func (c *Container) Close() {
	if c.SSEHub != nil {
		c.SSEHub.Close()
	}
	_ = c.Logger.Sync() // stderr cannot always be synced
}
