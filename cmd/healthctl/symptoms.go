package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pathakanu/healthAI/internal/openai"
	"github.com/spf13/cobra"
)

func newSymptomsCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "symptoms <description>",
		Short: "Get an AI assessment of your symptoms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symptoms := strings.TrimSpace(strings.Join(args, " "))
			if symptoms == "" {
				return errors.New("please describe your symptoms")
			}
			ctx, cancel := c.context(cmd)
			defer cancel()

			a, err := c.client().AnalyzeSymptoms(ctx, symptoms)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.IsEmergency {
				fmt.Fprintln(out, red(bold("EMERGENCY: seek immediate medical attention or call emergency services.")))
			}
			fmt.Fprintf(out, "%s %s\n\n", bold("Severity:"), severity(a.Severity))
			fmt.Fprintln(out, a.Analysis)
			if len(a.Recommendations) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, bold("Recommendations:"))
				for _, r := range a.Recommendations {
					fmt.Fprintf(out, "  • %s\n", r)
				}
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, gray("This is not a substitute for professional medical advice."))
			return nil
		},
	}
}

func severity(s openai.Severity) string {
	label := strings.ToUpper(string(s))
	switch s {
	case openai.SeverityHigh:
		return red(label)
	case openai.SeverityLow:
		return green(label)
	default:
		return yellow(label)
	}
}

func newNotificationsCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show recent in-app notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			events, err := c.client().Notifications(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, gray("No notifications"))
				return nil
			}
			for _, e := range events {
				fmt.Fprintf(out, "%s  %s\n", gray(e.At.Local().Format("Jan 2 15:04")), e.Message)
			}
			return nil
		},
	}
}
