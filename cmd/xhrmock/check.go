package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tarmac-project/xhrmock/fixture"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and validate a fixture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFixture(args[0])
			if err != nil {
				return err
			}
			printRoutes(cmd.OutOrStdout(), f)
			return nil
		},
	}
}

func loadFixture(path string) (*fixture.File, error) {
	f, err := fixture.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture %s: %w", path, err)
	}
	return f, nil
}

func printRoutes(w io.Writer, f *fixture.File) {
	fmt.Fprintf(w, "%d routes\n", len(f.Routes))
	for i, r := range f.Routes {
		target := r.URL
		if r.Pattern != "" {
			target = "~" + r.Pattern
		}

		answer := r.Fail
		if answer == "" {
			status := r.Status
			if status == 0 {
				status = 200
			}
			answer = fmt.Sprint(status)
		}
		fmt.Fprintf(w, "%3d  %-7s %s -> %s\n", i, r.Method, target, answer)
	}
}
