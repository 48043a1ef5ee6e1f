package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Chirchirp/Interview-Coach/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version and check for updates",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("coach", version)

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		checker := selfupdate.NewChecker()
		result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil || result == nil {
			return // version printing never fails on a network hiccup
		}
		if result.UpdateAvailable {
			fmt.Printf("Update available: %s — run `coach update`\n", result.LatestVersion)
		}
	},
}
