package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"kuesioner/adapters/chart"
	"kuesioner/adapters/excel"
	"kuesioner/adapters/report"
	"kuesioner/app"
	"kuesioner/internal"
	"kuesioner/internal/config"
	"kuesioner/internal/container"
	"kuesioner/internal/errors"
)

func newTallyCmd() *cobra.Command {
	var file string
	var pretty, strict bool

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Print the aggregate as JSON",
		Long: `Fetch the response sheet (or read --file) and print the per-dimension tally.

Example: kuesioner tally --file responses.csv --pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := loadSnapshot(cmd, file, strict)
			if err != nil {
				return err
			}
			return writeJSON(cmd, snapshot.Result, pretty)
		},
	}

	addFileFlag(cmd, &file)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of printing an empty tally when the sheet cannot be read")

	return cmd
}

func newChartCmd() *cobra.Command {
	var file, out, title string
	var strict bool

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the aggregate as a PNG bar chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := loadSnapshot(cmd, file, strict)
			if err != nil {
				return err
			}

			renderer := chart.NewRenderer()
			if title != "" {
				renderer.Title = title
			}
			data, err := renderer.RenderPNG(snapshot.Result)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return errors.Wrapf(err, "failed to write chart to %s", out)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s (%d responses)\n", out, snapshot.Result.TotalResponses)
			return nil
		},
	}

	addFileFlag(cmd, &file)
	cmd.Flags().StringVarP(&out, "out", "o", "chart.png", "Output PNG path")
	cmd.Flags().StringVar(&title, "title", "", "Chart title")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the sheet cannot be read")

	return cmd
}

func newExportCmd() *cobra.Command {
	var file, out string
	var strict bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the aggregate and yes rates to an xlsx report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := loadSnapshot(cmd, file, strict)
			if err != nil {
				return err
			}

			if err := excel.WriteReport(out, snapshot.Result, app.Summarize(snapshot.Result)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d responses)\n", out, snapshot.Result.TotalResponses)
			return nil
		},
	}

	addFileFlag(cmd, &file)
	cmd.Flags().StringVarP(&out, "out", "o", "report.xlsx", "Output xlsx path")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the sheet cannot be read")

	return cmd
}

func newReportCmd() *cobra.Command {
	var file, title, out string
	var asHTML, strict bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the summary as Markdown, or HTML with --html",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := loadSnapshot(cmd, file, strict)
			if err != nil {
				return err
			}

			summary := app.Summarize(snapshot.Result)
			content := report.Markdown(title, summary, time.Now())
			if asHTML {
				content = report.HTML(title, summary, time.Now())
			}

			if out == "" {
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}
			return os.WriteFile(out, content, 0o644)
		},
	}

	addFileFlag(cmd, &file)
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render a complete HTML page")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the sheet cannot be read")

	return cmd
}

func newSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit key=value...",
		Short: "Send one questionnaire submission to the sheet",
		Long: `Send one questionnaire submission to the sheet. A timestamp field is added.

Example: kuesioner submit nama=Budi A1=Ya A2=Tidak`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(args)
			if err != nil {
				return err
			}

			c, err := newContainer(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if _, err := c.Submissions.Submit(cmd.Context(), fields); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Submission stored")
			return nil
		},
	}

	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and live tally stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if port != "" {
				c.Config.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c.InitServer()
			return c.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")

	return cmd
}

func addFileFlag(cmd *cobra.Command, file *string) {
	cmd.Flags().StringVarP(file, "file", "f", "", "Read responses from an .xlsx or .csv export instead of the sheet")
}

// cliLogger writes warnings and errors to stderr unless LOG_LEVEL asks for more
func cliLogger(cmd *cobra.Command) *internal.Logger {
	level := internal.LogLevelWarn
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = internal.ParseLevel(env)
	}
	return internal.NewLoggerWithWriter(level, cmd.ErrOrStderr())
}

func newContainer(cmd *cobra.Command) (*container.Container, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(cfg, cliLogger(cmd))
}

// loadSnapshot aggregates --file when given, otherwise the live sheet
func loadSnapshot(cmd *cobra.Command, file string, strict bool) (app.Snapshot, error) {
	logger := cliLogger(cmd)

	if file != "" {
		table, err := excel.NewReader(file).WithLogger(logger).Read()
		if err != nil {
			return app.Snapshot{}, err
		}
		return app.NewTallyService(nil, logger).FromTable(table), nil
	}

	c, err := newContainer(cmd)
	if err != nil {
		return app.Snapshot{}, err
	}
	defer c.Close()

	snapshot := c.Tally.Current(cmd.Context())
	if !snapshot.Fetched && strict {
		return snapshot, fmt.Errorf("response sheet unavailable: %s", snapshot.Reason)
	}
	return snapshot, nil
}

func parseFields(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", arg)
		}
		fields[key] = value
	}
	return fields, nil
}

func writeJSON(cmd *cobra.Command, v interface{}, pretty bool) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
