package main

import (
	"encoding/json"
	"fmt"
	"munsite/internal/meeting"
	"munsite/internal/view"

	"github.com/spf13/cobra"
)

var nextJSON bool

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the next upcoming meeting",
	Args:  cobra.NoArgs,
	RunE:  runNext,
}

func init() {
	nextCmd.Flags().BoolVar(&nextJSON, "json", false, "print the meeting as JSON")
}

func runNext(cmd *cobra.Command, args []string) error {
	_, svc, cleanup, err := openService(view.PathLinks)
	defer cleanup()
	if err != nil {
		return err
	}

	data, err := svc.LoadHome(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	m, ok := svc.NextMeeting(data)
	if nextJSON {
		if !ok {
			fmt.Fprintln(out, "null")
			return nil
		}
		return json.NewEncoder(out).Encode(m)
	}
	if !ok {
		fmt.Fprintln(out, "No upcoming meeting found.")
		return nil
	}

	next := view.NewNextMeeting(m, meeting.StartsAt(m, svc.Location()).Format())
	fmt.Fprintf(out, "%s: %s\n", next.Type, next.When)
	if m.Room != "" {
		fmt.Fprintf(out, "Room: %s\n", m.Room)
	}
	if m.Duration != "" {
		fmt.Fprintf(out, "Duration: %s\n", m.Duration)
	}
	return nil
}
