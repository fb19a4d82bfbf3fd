package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/obrastat/obrastat/internal/api"
	"github.com/obrastat/obrastat/internal/pkg/constants"
	"github.com/obrastat/obrastat/internal/pkg/logger"
	"github.com/obrastat/obrastat/internal/pkg/source"
	"github.com/obrastat/obrastat/internal/pkg/store"
	"github.com/obrastat/obrastat/internal/pkg/store/xpgx"
	"github.com/obrastat/obrastat/internal/service/resources"
	"github.com/obrastat/obrastat/internal/service/scraper"
)

var rootCmd = &cobra.Command{
	Use:   "obrastat",
	Short: "Contractor compliance consolidation and KPI backend",
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(backfillCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("OBRASTAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(constants.ViperListenAddr, ":8080")
	viper.SetDefault(constants.ViperDataFile, "recursos_data.json")
	viper.SetDefault(constants.ViperAllowOrigins, []string{"http://localhost:3000"})

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println("error reading config:", err)
			os.Exit(1)
		}
	}
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func openStore(ctx context.Context) (store.Store, error) {
	pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperDatabaseDSN))
	if err != nil {
		return nil, fmt.Errorf("xpgx.NewPool: %w", err)
	}

	st := store.NewStore(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	return st, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}

			svc, err := api.NewAPIService(st)
			if err != nil {
				return err
			}

			svc.Serve(viper.GetString(constants.ViperListenAddr))
			return nil
		},
	}
}

func backfillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Scrape the portal, consolidate and persist one run",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}

			snapshot, err := scraper.NewScraperService().
				ScrapeSnapshot(ctx, viper.GetString(constants.ViperPortalURL))
			if err != nil {
				return err
			}

			consolidated, err := resources.NewResourcesService(st).ImportSnapshot(ctx, snapshot)
			if err != nil {
				return err
			}

			if path := viper.GetString(constants.ViperDataFile); path != "" {
				if err := source.Save(ctx, path, consolidated); err != nil {
					return err
				}
			}

			logger.Infof(ctx, "backfill done: %d resources", consolidated.Total)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Consolidate and aggregate a snapshot file offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}
			if file == "" {
				file = viper.GetString(constants.ViperDataFile)
			}

			snapshot := source.Load(ctx, file)
			res := resources.Consolidate(snapshot.Resources)
			stats := resources.Aggregate(res.Records)

			out, err := sonic.ConfigDefault.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().String("file", "", "snapshot file to read (default: configured data file)")
	return cmd
}
