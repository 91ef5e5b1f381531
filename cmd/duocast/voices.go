package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nadzzz/duocast/internal/voice"
)

func newVoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List the available voices",
		RunE: func(cmd *cobra.Command, args []string) error {
			printVoices(cmd.OutOrStdout(), voice.Default())
			return nil
		},
	}
}

func printVoices(w io.Writer, c *voice.Catalog) {
	v1, v2 := c.Defaults()
	for _, e := range c.Entries() {
		marker := ""
		switch e.Name {
		case v1:
			marker = " (default voice 1)"
		case v2:
			marker = " (default voice 2)"
		}
		fmt.Fprintf(w, "%-10s %-40s %s%s\n", e.Name, e.ID, strings.Join(e.Locales, ","), marker)
	}
}
