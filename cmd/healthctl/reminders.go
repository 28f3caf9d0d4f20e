package main

import (
	"fmt"
	"strconv"

	"github.com/pathakanu/healthAI/internal/model"
	"github.com/pathakanu/healthAI/internal/reminder"
	"github.com/spf13/cobra"
)

func newRemindersCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminders",
		Aliases: []string{"r"},
		Short:   "Manage medicine reminders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			list, err := c.client().ListReminders(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, gray("No reminders set. Add your first reminder!"))
				return nil
			}
			for _, r := range list {
				printReminder(cmd, r)
			}
			return nil
		},
	})

	cmd.AddCommand(reminderInputCommand(c, "add <medicine> <dosage> <HH:MM>", "Add a reminder", 3,
		func(cmd *cobra.Command, args []string, in reminder.Input) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			r, err := c.client().AddReminder(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), green(fmt.Sprintf("Reminder added for %s at %s", r.MedicineName, reminder.FormatTime(r.Time))))
			printReminder(cmd, r)
			return nil
		}))

	cmd.AddCommand(reminderInputCommand(c, "edit <id> <medicine> <dosage> <HH:MM>", "Replace a reminder (it gets a new id)", 4,
		func(cmd *cobra.Command, args []string, in reminder.Input) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			ctx, cancel := c.context(cmd)
			defer cancel()

			r, err := c.client().EditReminder(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), green("Reminder updated"))
			printReminder(cmd, r)
			return nil
		}))

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			ctx, cancel := c.context(cmd)
			defer cancel()

			deleted, err := c.client().DeleteReminder(ctx, id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), yellow(fmt.Sprintf("No reminder with id %d", id)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), green("Reminder deleted successfully!"))
			return nil
		},
	})
	return cmd
}

// reminderInputCommand builds add/edit: the trailing three args are the
// medicine, dosage and time, and --frequency sets the label.
func reminderInputCommand(c *cli, use, short string, nargs int, run func(*cobra.Command, []string, reminder.Input) error) *cobra.Command {
	var frequency string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := args[len(args)-3:]
			return run(cmd, args, reminder.Input{
				MedicineName: fields[0],
				Dosage:       fields[1],
				Time:         fields[2],
				Frequency:    model.Frequency(frequency),
			})
		},
	}
	cmd.Flags().StringVarP(&frequency, "frequency", "f", string(model.FrequencyDaily), "once, daily, twice, three or weekly")
	return cmd
}

func printReminder(cmd *cobra.Command, r model.Reminder) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s  %s  %s\n",
		gray(fmt.Sprintf("#%d", r.ID)),
		bold(r.MedicineName),
		r.Dosage,
		cyan(reminder.FormatTime(r.Time)),
		gray(reminder.FormatFrequency(r.Frequency)),
	)
}
