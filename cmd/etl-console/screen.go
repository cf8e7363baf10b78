package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmussaku/mongodb-etl-poc/internal/cache"
	"github.com/dmussaku/mongodb-etl-poc/internal/navigation"
	"github.com/dmussaku/mongodb-etl-poc/internal/service"
)

func newScreenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "screen <path>",
		Short: "Load one screen and print its view-state as JSON.",
		Example: "  etl-console screen /\n" +
			"  etl-console screen /jobs/3",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(opts)
			if err != nil {
				return err
			}

			console := service.NewConsoleService(a.repo, cache.NewNoticeStore(a.cfg.Notices.TTL), a.logger)
			defer console.Close()

			selection := console.Navigate(cmd.Context(), args[0])
			if selection.Screen == navigation.ScreenNotFound {
				return &exitError{code: 2, err: fmt.Errorf("unknown route %q", selection.Route)}
			}
			console.Wait()

			encoder := json.NewEncoder(opts.out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(console.Snapshot())
		},
	}
}
