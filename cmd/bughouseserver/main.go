package main

import (
	"context"
	"log"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"bughouse/internal/config"
	"bughouse/internal/httpapi"
)

func main() {
	log.SetFlags(0)
	cfg := &config.Config{}

	cmd := config.NewCmd(cfg, func(cmd *cobra.Command, args []string) error {
		runtime.GOMAXPROCS(cfg.Threads)
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return httpapi.New(cfg).ListenAndServe(ctx)
	})

	cobra.CheckErr(cmd.ExecuteContext(context.Background()))
}
