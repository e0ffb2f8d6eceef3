package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowtrace/flowtrace/pkg/playground"
)

// validateCmd checks an event log without reconstructing it
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an event log's ordering and store/load invariants",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	log, err := playground.ParseLog(input)
	if err != nil {
		return err
	}

	status := "open"
	if log.Terminated() {
		status = "terminated"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d events (%s)\n", log.Len(), status)
	return nil
}
