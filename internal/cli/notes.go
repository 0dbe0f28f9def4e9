package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/focusfoundry/tempo/internal/domain"
)

var (
	glamourRenderer     *glamour.TermRenderer //nolint:gochecknoglobals // cached renderer for performance
	glamourRendererOnce sync.Once             //nolint:gochecknoglobals // sync.Once for renderer initialization
)

// getGlamourRenderer returns a cached glamour renderer for markdown
// rendering, or nil when the terminal cannot be probed.
func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			glamourRenderer = r
		}
	})
	return glamourRenderer
}

func newNotesCmd(appFn func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage quick notes",
	}
	cmd.AddCommand(
		newNotesAddCmd(appFn),
		newNotesListCmd(appFn),
		newNotesShowCmd(appFn),
		newNotesRmCmd(appFn),
	)
	return cmd
}

func newNotesAddCmd(appFn func() *App) *cobra.Command {
	var workspaceID, pageID string
	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Add a note (markdown welcome)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			note, err := a.Notes.Create(workspaceID, pageID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleSuccess.Render("added"), styleMuted.Render(note.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&workspaceID, "workspace", "", "workspace id")
	cmd.Flags().StringVar(&pageID, "page", "", "page id")
	return cmd
}

func newNotesListCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			all := a.Notes.List()
			if len(all) == 0 {
				fmt.Fprintln(out, styleMuted.Render("no notes"))
				return nil
			}
			for _, n := range all {
				fmt.Fprintf(out, "%s  %s  %s\n",
					styleMuted.Render(noteDate(n)), noteSummary(n.Content), styleMuted.Render(n.ID))
			}
			return nil
		},
	}
}

func newNotesShowCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Render a note's markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			note, ok := a.Notes.Get(args[0])
			if !ok {
				fmt.Fprintln(out, styleMuted.Render("no such note"))
				return nil
			}
			fmt.Fprintln(out, styleMuted.Render(noteDate(note)))
			renderMarkdown(out, note.Content)
			return nil
		},
	}
}

func newNotesRmCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			ok, err := a.Notes.Remove(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), styleMuted.Render("no such note"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("removed"))
			return nil
		},
	}
}

// renderMarkdown writes content through glamour when a renderer is
// available, falling back to the raw text otherwise.
func renderMarkdown(w io.Writer, content string) {
	if renderer := getGlamourRenderer(); renderer != nil {
		if rendered, err := renderer.Render(content); err == nil {
			fmt.Fprint(w, rendered)
			return
		}
	}
	fmt.Fprintln(w, content)
}

func noteDate(n domain.Note) string {
	if ts, err := time.Parse(time.RFC3339, n.Date); err == nil {
		return ts.Format("2006-01-02 15:04")
	}
	return n.Date
}

func noteSummary(content string) string {
	line := content
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	const maxLen = 60
	if len(line) > maxLen {
		line = line[:maxLen-1] + "…"
	}
	return line
}
