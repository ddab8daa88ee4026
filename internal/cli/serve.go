package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kestrelsec/xward/internal/audit"
	"github.com/kestrelsec/xward/internal/config"
	"github.com/kestrelsec/xward/internal/gate"
	"github.com/kestrelsec/xward/internal/mcp"
	"github.com/kestrelsec/xward/internal/policy"
	"github.com/kestrelsec/xward/internal/ratelimit"
	"github.com/kestrelsec/xward/internal/registry"
	"github.com/kestrelsec/xward/internal/upstream"
)

var (
	serveConfig   string
	serveAuditLog string
	serveLogLevel string
	serveProfile  string
	serveGroups   string
	serveDisabled string
	serveEnabled  string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to YAML config (hot-reloaded on change)")
	serveCmd.Flags().StringVar(&serveAuditLog, "audit-log", "", "Path to hash-chained decision log (JSONL)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level (debug/info/warn/error)")
	serveCmd.Flags().StringVar(&serveProfile, "profile", "", "Permission profile (researcher/creator/manager/automation/custom)")
	serveCmd.Flags().StringVar(&serveGroups, "groups", "", "Comma-separated tool groups for the custom profile")
	serveCmd.Flags().StringVar(&serveDisabled, "disabled-tools", "", "Comma-separated tools to disable regardless of profile")
	serveCmd.Flags().StringVar(&serveEnabled, "enabled-tools", "", "Comma-separated tools to force-enable on top of the profile")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the guarded MCP tool server on stdio",
	Long: "Runs xward as an MCP (Model Context Protocol) server over stdio.\n" +
		"Every platform tool is exposed; calls outside the active profile or over\n" +
		"rate budget return a structured refusal instead of reaching the API.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := mustBuildLogger(serveLogLevel)
	defer logger.Sync()

	// Flags override environment for one-off runs.
	applyFlagEnv()

	cfg, err := config.Load(serveConfig)
	if err != nil {
		return err
	}

	reg := registry.Default()

	// Resolve once at startup so a bad profile fails fast instead of on the
	// first tool call.
	eff, err := policy.Resolve(reg, cfg.PolicySpec())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	limiter := ratelimit.New(cfg.RateLimits)
	store := config.NewStore(cfg)
	g := gate.New(reg, limiter, logger)

	var auditLog *audit.Log
	if serveAuditLog != "" {
		auditLog, err = audit.Open(serveAuditLog)
		if err != nil {
			return err
		}
	}

	srv := mcp.New(mcp.Options{
		Registry: reg,
		Gate:     g,
		Store:    store,
		Invoker:  buildInvoker(logger),
		AuditLog: auditLog,
		Logger:   logger,
	})
	defer srv.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	if serveConfig != "" {
		reloader, err := config.NewReloader(store, serveConfig, logger, func(next config.Config) {
			limiter.SetConfig(next.RateLimits)
		})
		if err != nil {
			return err
		}
		group.Go(func() error { return reloader.Run(ctx) })
	}

	logger.Info("xward MCP server running on stdio",
		zap.String("profile", string(eff.Profile)),
		zap.Int("tools", reg.Len()),
		zap.Int("allowed", eff.Len()))

	group.Go(func() error { return srv.Run(ctx) })

	if err := group.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// applyFlagEnv pushes non-empty flags into the environment so config.Load
// and the hot-reload path see one consistent source.
func applyFlagEnv() {
	for env, val := range map[string]string{
		config.EnvProfile:       serveProfile,
		config.EnvGroups:        serveGroups,
		config.EnvDisabledTools: serveDisabled,
		config.EnvEnabledTools:  serveEnabled,
	} {
		if val != "" {
			os.Setenv(env, val)
		}
	}
}

// buildInvoker picks the platform client. Without a bearer token the server
// still runs; calls that pass the gate fail with invalid_configuration.
func buildInvoker(logger *zap.Logger) upstream.Invoker {
	token := firstNonEmpty(
		os.Getenv(config.EnvBearerToken),
		os.Getenv("TWITTER_BEARER_TOKEN"),
	)
	if token == "" {
		logger.Warn("no bearer token configured, platform calls will fail")
		return upstream.Unconfigured{}
	}
	return upstream.NewClient("", token, logger)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
