package main

import (
	"context"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pathakanu/healthAI/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

const defaultServer = "http://localhost:8080"

// cli carries what every subcommand needs.
type cli struct {
	v       *viper.Viper
	timeout time.Duration
}

func (c *cli) client() *client.Client {
	return client.New(c.v.GetString("server"))
}

func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.timeout)
}

func newRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:          "healthctl",
		Short:        "Medicine reminders, symptom checks and doctor search",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.v.GetBool("no-color") {
				color.NoColor = true
			}
			c.timeout = c.v.GetDuration("timeout")
			return nil
		},
	}

	root.PersistentFlags().String("server", defaultServer, "healthAI server base URL")
	root.PersistentFlags().Duration("timeout", 30*time.Second, "request timeout")
	root.PersistentFlags().Bool("no-color", false, "disable colored output")

	c.v.SetEnvPrefix("HEALTHCTL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	_ = c.v.BindPFlags(root.PersistentFlags())

	root.AddCommand(
		newRemindersCommand(c),
		newSymptomsCommand(c),
		newDoctorsCommand(c),
		newNotificationsCommand(c),
	)
	return root
}
