package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luma/minicoap/cmd/gen"
	"github.com/luma/minicoap/internal/env"
)

var RootCmd = &cobra.Command{
	Use:   "minicoap",
	Short: "Decode and encode CoAP datagrams",
	Long: `Decode and encode CoAP (RFC 7252) datagrams.

Configuration is read from MINICOAP_* environment variables, and from
.env.local when it exists.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(DecodeCmd)
	RootCmd.AddCommand(EncodeCmd)
	RootCmd.AddCommand(VersionCmd)
	RootCmd.AddCommand(gen.RootCmd)
}

// Execute runs the command line and exits non zero on failure.
func Execute() {
	ctx, signalStop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer signalStop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		signalStop()
		os.Exit(1)
	}
}

// setup loads the config and builds the logger every command shares.
func setup(ctx context.Context, name string) (*env.Config, *zap.Logger, error) {
	conf, err := env.LoadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	log, err := env.MakeLogger(conf.LogLevel, conf.LogEncoding)
	if err != nil {
		return nil, nil, err
	}

	return conf, log.Named(name), nil
}
