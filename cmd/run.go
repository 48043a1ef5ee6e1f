package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chirchirp/Interview-Coach/internal/app"
	"github.com/Chirchirp/Interview-Coach/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interview coach (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the event store and launches the TUI. A broken store is
// not fatal: sessions still run, they just aren't logged.
func runApp(cmd *cobra.Command) error {
	opts := app.Options{
		Defaults: setupDefaults(cmd),
	}

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			defer st.Close()
			opts.Store = st
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Event store unavailable:", err)
		fmt.Fprintln(os.Stderr, "Sessions will not be recorded.")
	}

	return app.Run(opts)
}
