package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ustc21xyx/cardmeta/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP card codec server",
	Long: `Serve exposes extract, embed and strip over HTTP, with Prometheus
metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Printf("listening on %s", serveAddr)
		return api.Start(api.Config{Addr: serveAddr})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
