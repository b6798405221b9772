package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tanimomor/portfolio/internal/content"
)

var contentFormat string

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Print the portfolio content catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := content.Load()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch contentFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(catalog)
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(catalog)
		}
		return fmt.Errorf("unknown format %q", contentFormat)
	},
}
