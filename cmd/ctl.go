package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devmobasa/wayscriber/internal/ipc"
	"github.com/spf13/cobra"
)

// Flags shared by the control commands.
var (
	socketPath string

	undoSteps int
	redoSteps int

	captureDest string
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func controlClient() (*ipc.Client, error) {
	client, err := ipc.NewClient(socketPath)
	if err != nil {
		return nil, fmt.Errorf("create control client: %w", err)
	}
	return client, nil
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last drawing actions on the running instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlClient()
		if err != nil {
			return err
		}
		return client.Undo(undoSteps)
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo previously undone drawing actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlClient()
		if err != nil {
			return err
		}
		return client.Redo(redoSteps)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the active page",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlClient()
		if err != nil {
			return err
		}
		return client.Clear()
	},
}

var toolCmd = &cobra.Command{
	Use:   "tool <name>",
	Short: "Select the active drawing tool",
	Long: `Select the active drawing tool on the running instance.
Tools: pen, marker, eraser, line, rect, ellipse, arrow, highlight,
text, sticky_note, step_marker, select.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlClient()
		if err != nil {
			return err
		}
		return client.SelectTool(args[0])
	},
}

var boardCmd = &cobra.Command{
	Use:   "board <id>",
	Short: "Switch to another board",
	Long: `Switch the running instance to another board. The built-in boards
are transparent, whiteboard and blackboard; custom boards are addressed
by their id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlClient()
		if err != nil {
			return err
		}
		return client.SwitchBoard(args[0])
	},
}

var captureCmd = &cobra.Command{
	Use:   "capture [fullscreen|selection]",
	Short: "Take a screenshot through the running instance",
	Long: `Ask the running instance to take a screenshot. A selection capture
uses the current on-screen selection and fails when nothing is
selected. The destination is a file, the clipboard, or both.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		captureType := "fullscreen"
		if len(args) == 1 {
			captureType = args[0]
		}
		client, err := controlClient()
		if err != nil {
			return err
		}
		return client.Capture(captureType, captureDest)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle the overlay between drawing and click-through",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlClient()
		if err != nil {
			return err
		}
		return client.ToggleOverlay()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running instance's state",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlClient()
		if err != nil {
			return err
		}
		status, err := client.Status()
		if err != nil {
			return err
		}

		var out strings.Builder
		out.WriteString(headerStyle.Render("WAYSCRIBER STATUS"))
		out.WriteString("\n\n")

		visible := okStyle.Render("● drawing")
		if !status.Visible {
			visible = dimStyle.Render("○ click-through")
		}
		writeRow(&out, "Overlay", visible)
		writeRow(&out, "Board", valueStyle.Render(status.Board))
		writeRow(&out, "Page", valueStyle.Render(fmt.Sprintf("%d of %d", status.Page, status.PageCount)))
		writeRow(&out, "Tool", valueStyle.Render(fmt.Sprintf("%s (%.1fpx)", status.Tool, status.Thickness)))
		writeRow(&out, "Shapes", valueStyle.Render(fmt.Sprintf("%d", status.ShapeCount)))
		writeRow(&out, "History", valueStyle.Render(fmt.Sprintf("%d undo / %d redo", status.UndoDepth, status.RedoDepth)))

		fmt.Println(out.String())
		return nil
	},
}

func writeRow(out *strings.Builder, label, value string) {
	out.WriteString(labelStyle.Render(label))
	out.WriteString(value)
	out.WriteString("\n")
}

func init() {
	for _, c := range []*cobra.Command{undoCmd, redoCmd, clearCmd, toolCmd, boardCmd, captureCmd, toggleCmd, statusCmd} {
		c.Flags().StringVar(&socketPath, "socket", "", "control socket path (default: per-user socket)")
		rootCmd.AddCommand(c)
	}

	undoCmd.Flags().IntVarP(&undoSteps, "steps", "n", 1, "number of steps to undo")
	redoCmd.Flags().IntVarP(&redoSteps, "steps", "n", 1, "number of steps to redo")
	captureCmd.Flags().StringVar(&captureDest, "to", "file", "capture destination (file, clipboard, both)")
}
