// Command server runs the duckgate chat completions shim.
//
// Configuration is read from a YAML file, a .env file and DUCKGATE_*
// environment variables (see pkg/config). The legacy API_KEYS variable is
// honored for the key allow-list.
//
// Usage:
//
//	# Start with discovered configuration
//	duckgate
//
//	# Start with an explicit config file and port
//	duckgate --config /etc/duckgate/config.yaml --port 9090
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rhuss/duckgate/pkg/auth"
	"github.com/rhuss/duckgate/pkg/auth/apikey"
	"github.com/rhuss/duckgate/pkg/config"
	"github.com/rhuss/duckgate/pkg/debug"
	"github.com/rhuss/duckgate/pkg/engine"
	"github.com/rhuss/duckgate/pkg/provider/duckchat"
	transporthttp "github.com/rhuss/duckgate/pkg/transport/http"
)

// Version is set by build flags.
var Version = "dev"

var flags struct {
	configPath string
	port       int
}

var rootCmd = &cobra.Command{
	Use:   "duckgate",
	Short: "OpenAI-compatible chat completions shim for DuckDuckGo chat",
	Long: `duckgate accepts OpenAI Chat Completions requests, performs a session
handshake with the DuckDuckGo chat service, forwards the conversation and
returns the reassembled reply as a single chat.completion object.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("duckgate %s\n", Version)
		fmt.Printf("Go Version: %s\n", runtime.Version())
		fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file path")
	rootCmd.Flags().IntVarP(&flags.port, "port", "p", 0, "override listen port")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = flags.port
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --port: %w", err)
		}
	}

	debug.Init(cfg.Logging.Debug, cfg.Logging.Level)
	if cats := debug.Categories(); len(cats) > 0 {
		slog.Info("debug categories enabled", "categories", cats)
	}

	keys := cfg.Auth.Keys()
	if len(keys) == 0 {
		slog.Warn("no API keys configured, every request will be rejected")
	}

	prov, err := duckchat.New(duckchat.Config{
		StatusURL: cfg.Upstream.StatusURL,
		ChatURL:   cfg.Upstream.ChatURL,
		Timeout:   cfg.Upstream.Timeout,
		UserAgent: cfg.Upstream.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}
	defer prov.Close()

	eng, err := engine.New(prov, engine.Config{
		DefaultModel:    cfg.Models.Default,
		SupportedModels: cfg.Models.Supported,
	})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	srv := transporthttp.NewServer(eng,
		transporthttp.WithAddr(":"+strconv.Itoa(cfg.Server.Port)),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithReadTimeout(cfg.Server.ReadTimeout),
		transporthttp.WithWriteTimeout(cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithMetricsPath(metricsPath),
		transporthttp.WithLogger(slog.Default()),
		transporthttp.WithAuth(auth.Middleware(apikey.NewChain(keys))),
	)

	slog.Info("duckgate configured",
		"port", cfg.Server.Port,
		"status_url", cfg.Upstream.StatusURL,
		"chat_url", cfg.Upstream.ChatURL,
		"default_model", cfg.Models.Default,
		"models", len(cfg.Models.Supported),
		"api_keys", len(keys),
		"metrics", metricsPath,
	)

	return srv.ListenAndServe()
}
