package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ai-compliance/internal/cache"
	"ai-compliance/internal/catalog"
	"ai-compliance/internal/config"
	"ai-compliance/internal/database"
	"ai-compliance/internal/handlers"
	"ai-compliance/internal/ledger"
	"ai-compliance/internal/logging"
	"ai-compliance/internal/server"
)

func main() {
	root := &cobra.Command{
		Use:          "server",
		Short:        "AI compliance posture engine",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), catalogCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logging.Setup(cfg.LogLevel)

			cat, err := catalog.Load()
			if err != nil {
				return fmt.Errorf("load control catalog: %w", err)
			}

			database.Init(cfg.DBDSN)

			led := ledger.New(database.NewClassificationStore(database.DB))
			rc := cache.New(cfg.RedisAddr, cfg.CacheTTL)
			handlers.Init(cat, led, rc)

			r := server.NewRouter(cfg)

			addr := fmt.Sprintf(":%s", cfg.ServerPort)
			log.Info().Str("addr", addr).Int("catalog_controls", cat.Len()).Msg("starting server")
			return r.Run(addr)
		},
	}
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Control catalog utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the embedded control catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			for _, c := range cat.All() {
				fmt.Printf("%-8s %-12s %s\n", c.Code, c.Category, c.Name)
			}
			fmt.Printf("catalog ok: %d controls\n", cat.Len())
			return nil
		},
	})
	return cmd
}
