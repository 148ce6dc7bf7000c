package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bloodmagesoftware/floorplan/project"
	"github.com/bloodmagesoftware/floorplan/server"
	"github.com/bloodmagesoftware/floorplan/store"
	"github.com/spf13/cobra"
)

var (
	serveNoStore bool
	serveQuiet   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve plan rendering and storage over HTTP",
	Long: `Starts the plan service. Settings come from the server section of floorplan.yaml
and can be overridden with PORT, DB_PATH, READ_TIMEOUT, WRITE_TIMEOUT and CACHE_MB.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := project.Load()
		if err != nil {
			return err
		}
		config.ApplyEnv()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var st *store.Store
		if !serveNoStore {
			dbPath := config.Path(config.Server.DBPath)
			log.Printf("[DB] Opening %s", dbPath)
			st, err = store.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
		}

		srv, err := server.New(server.Config{
			ReadTimeout:  time.Duration(config.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(config.Server.WriteTimeout) * time.Second,
			CacheMB:      config.Server.CacheMB,
			Grid:         config.Grid(),
			Width:        config.Canvas.Width,
			Height:       config.Canvas.Height,
			ShareBase:    config.ShareBase,
			Quiet:        serveQuiet,
		}, st)
		if err != nil {
			return err
		}
		defer srv.Close()

		return srv.Listen(ctx, ":"+config.Server.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "Disable the saved plan routes")
	serveCmd.Flags().BoolVar(&serveQuiet, "quiet", false, "Disable the request log")
}
