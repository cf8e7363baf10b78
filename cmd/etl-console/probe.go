package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProbeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Submit a test task to the backend task queue.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(opts)
			if err != nil {
				return err
			}

			probe, err := a.repo.TestTaskQueue(cmd.Context())
			if err != nil {
				return &exitError{code: 1, err: fmt.Errorf("task queue probe failed: %w", err)}
			}

			_, err = fmt.Fprintf(opts.out, "%s (task %s, status %s)\n", probe.Message, probe.TaskID, probe.Status)
			return err
		},
	}
}
