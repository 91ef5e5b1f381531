// Duocast turns web pages, Bilibili videos and documents into a two-host
// podcast: an LLM writes the conversation and Azure Speech reads it aloud.
//
// Usage:
//
//	duocast serve [--config duocast.yaml]
//	duocast generate --web https://example.com/post --out podcast.wav
//	duocast voices
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgCyan)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "duocast",
		Short:         "Generate two-host podcasts from your sources",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("duocast %s\n", version))
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to config file (e.g. configs/duocast.local.yaml)")

	root.AddCommand(
		newServeCmd(&configFile),
		newGenerateCmd(&configFile),
		newVoicesCmd(),
	)
	return root
}
