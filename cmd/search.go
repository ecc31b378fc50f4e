package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spyglass-realty/permit-search/internal/geocode"
)

var searchCmd = &cobra.Command{
	Use:   "search <address>",
	Short: "Run one permit search and print the result as JSON",
	Long: `Geocodes the address, walks the jurisdiction cascade, and prints the
aggregated result.

Examples:
  permit-search search "301 W 2nd St, Austin, TX 78701"
  permit-search search 500 Fannin St, Houston, TX`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address := strings.TrimSpace(strings.Join(args, " "))
		if address == "" {
			return eris.New("search: address is required")
		}

		ctx := cmd.Context()

		loc, err := buildResolver(cfg).Resolve(ctx, address)
		if err != nil {
			zap.L().Warn("search: geocode failed, using default routing",
				zap.String("address", address),
				zap.Error(err),
			)
			loc = &geocode.Location{}
		}

		dispatcher, err := buildDispatcher(cfg)
		if err != nil {
			return err
		}

		result := dispatcher.Dispatch(ctx, address, loc.City, loc.County)

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return eris.Wrap(err, "search: marshal result")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
