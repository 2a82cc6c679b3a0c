package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"

	"github.com/secondary4432-cyber/framelift-ai/internal/config"
	"github.com/secondary4432-cyber/framelift-ai/internal/logger"
	"github.com/secondary4432-cyber/framelift-ai/internal/media"
	"github.com/secondary4432-cyber/framelift-ai/internal/server"
	"github.com/secondary4432-cyber/framelift-ai/internal/server/handler"
	"github.com/secondary4432-cyber/framelift-ai/internal/tiktok"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "framelift",
	Short: "Backend bridging the framelift frontend to TikTok",
	Long: `Framelift is a small backend that sits between the web frontend and
TikTok's open API: it exchanges OAuth authorization codes for access tokens
and accepts video uploads destined for the content API.`,
	RunE: runServer,
}

// configCmd prints the resolved configuration with secrets redacted
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg.Redacted())
		if err != nil {
			return err
		}
		pterm.Println(string(out))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitFlags()
	rootCmd.PersistentFlags().AddFlagSet(pflag.CommandLine)
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
	rootCmd.AddCommand(configCmd)
}

// runServer assembles the dependency graph and serves until interrupted.
func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.InitLogger(&cfg.Logging); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	var srv *server.Server
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		tiktok.Module,
		media.Module,
		handler.Module,
		server.Module,
		fx.Populate(&srv),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
