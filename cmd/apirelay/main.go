package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/Anshumanformal/apirelay/internal/apiclient"
	"github.com/Anshumanformal/apirelay/internal/config"
	"github.com/Anshumanformal/apirelay/internal/logger"
	"github.com/Anshumanformal/apirelay/internal/server"
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := config.DefaultConfig()

	root := &cobra.Command{
		Use:     "apirelay",
		Short:   "Relay HTTP triggers to a downstream JSON API",
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			godotenv.Load()

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// Environment overrides defaults but never explicit flags
			if err := config.ApplyEnv(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			api, err := apiclient.New(cfg.Endpoint,
				apiclient.WithToken(cfg.Token),
				apiclient.WithTimeout(cfg.Timeout),
			)
			if err != nil {
				logger.Get().Error().Err(err).Str("endpoint", cfg.Endpoint).Msg("Failed to create API client")
				logger.Get().Warn().Msg("The server will run but the trigger route will fail without a valid endpoint")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(api)
			return srv.StartWithContext(ctx, cfg.Addr())
		},
	}

	root.Flags().IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	root.Flags().StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "base URL of the downstream API")
	root.Flags().StringVar(&cfg.Token, "token", cfg.Token, "bearer token for downstream requests")
	root.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP timeout for downstream requests")

	if err := root.Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("apirelay")
		os.Exit(1)
	}
}
