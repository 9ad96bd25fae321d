package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ukaji3/twbmeta-go/internal/server"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the workbook upload service",
		Long: `Serve an upload form on / and accept .twb files on POST /upload.
Each upload is answered with its xlsx metadata report as an attachment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.New(cfg.Server, extractOptions(), logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().Bool("retain-outputs", false, "Keep generated reports after sending them")
	v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	v.BindPFlag("server.retain_outputs", cmd.Flags().Lookup("retain-outputs"))
	return cmd
}
