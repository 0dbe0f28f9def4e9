package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/task"
)

func newTaskCmd(appFn func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(appFn),
		newTaskListCmd(appFn),
		newTaskDoneCmd(appFn),
		newTaskToggleCmd(appFn),
		newTaskEditCmd(appFn),
		newTaskRmCmd(appFn),
	)
	return cmd
}

func newTaskAddCmd(appFn func() *App) *cobra.Command {
	var (
		category string
		priority string
		dueDate  string
		dueTime  string
		notesStr string
		tags     []string
		estimate int
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			created, err := a.Tasks.Create(task.CreateInput{
				Title:            strings.Join(args, " "),
				Category:         domain.Category(category),
				Priority:         domain.Priority(priority),
				DueDate:          dueDate,
				DueTime:          dueTime,
				Notes:            notesStr,
				Tags:             tags,
				EstimatedMinutes: estimate,
			})
			if err != nil {
				return err
			}
			a.RefreshDerived()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n",
				styleSuccess.Render("added"), created.Title, styleMuted.Render(created.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "other", "category (design|dev|meet|personal|other)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority (high|medium|low)")
	cmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dueTime, "due-time", "", "due time (HH:MM)")
	cmd.Flags().StringVar(&notesStr, "notes", "", "free-form notes")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "estimated minutes")
	return cmd
}

func newTaskListCmd(appFn func() *App) *cobra.Command {
	var (
		status   string
		category string
		all      bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			tasks := a.Tasks.List()
			shown := 0
			for _, t := range tasks {
				if !all && status == "" && t.IsDone() {
					continue
				}
				if status != "" && string(t.Status) != status {
					continue
				}
				if category != "" && string(t.Category) != category {
					continue
				}
				shown++
				printTask(out, t)
			}
			if shown == 0 {
				fmt.Fprintln(out, styleMuted.Render("no tasks"))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by status (todo|in-progress|done)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")
	return cmd
}

func printTask(out io.Writer, t domain.Task) {
	line := fmt.Sprintf("%s  %s  %s  %s",
		statusBadge(string(t.Status)),
		priorityBadge(string(domain.EffectivePriority(t))),
		t.Title,
		styleMuted.Render(t.ID))
	if t.DueDate != "" {
		line += "  " + styleWarning.Render("due "+t.DueDate)
	}
	if len(t.Tags) > 0 {
		line += "  " + styleMuted.Render("#"+strings.Join(t.Tags, " #"))
	}
	fmt.Fprintln(out, line)
}

func newTaskDoneCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			updated, ok, err := a.Tasks.MarkDone(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), styleMuted.Render("no such task"))
				return nil
			}
			a.RefreshDerived()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleSuccess.Render("done"), updated.Title)
			return nil
		},
	}
}

func newTaskToggleCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a task between done and todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			updated, ok, err := a.Tasks.ToggleStatus(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), styleMuted.Render("no such task"))
				return nil
			}
			a.RefreshDerived()
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.Title, statusBadge(string(updated.Status)))
			return nil
		},
	}
}

func newTaskEditCmd(appFn func() *App) *cobra.Command {
	var (
		title    string
		status   string
		category string
		priority string
		dueDate  string
		dueTime  string
		notesStr string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			var ch task.Changes
			set := func(flag string, apply func()) {
				if cmd.Flags().Changed(flag) {
					apply()
				}
			}
			set("title", func() { ch.Title = &title })
			set("status", func() { s := domain.Status(status); ch.Status = &s })
			set("category", func() { c := domain.Category(category); ch.Category = &c })
			set("priority", func() { p := domain.Priority(priority); ch.Priority = &p })
			set("due", func() { ch.DueDate = &dueDate })
			set("due-time", func() { ch.DueTime = &dueTime })
			set("notes", func() { ch.Notes = &notesStr })

			updated, ok, err := a.Tasks.Update(args[0], ch)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), styleMuted.Render("no such task"))
				return nil
			}
			a.RefreshDerived()
			printTask(cmd.OutOrStdout(), updated)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&status, "status", "s", "", "new status (todo|in-progress|done)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority")
	cmd.Flags().StringVar(&dueDate, "due", "", "new due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dueTime, "due-time", "", "new due time (HH:MM)")
	cmd.Flags().StringVar(&notesStr, "notes", "", "new notes")
	return cmd
}

func newTaskRmCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			ok, err := a.Tasks.Remove(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), styleMuted.Render("no such task"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("removed"))
			return nil
		},
	}
}
