package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/devmobasa/wayscriber/internal/config"
	"github.com/devmobasa/wayscriber/internal/logger"
	"github.com/devmobasa/wayscriber/internal/session"
	"github.com/spf13/cobra"
)

var sessionForce bool

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and manage the persisted session",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		store := sessionStore(cfg)

		snap, err := store.Load()
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if snap == nil {
			fmt.Println("No persisted session at", store.Path)
			return nil
		}

		var out strings.Builder
		out.WriteString(headerStyle.Render("PERSISTED SESSION"))
		out.WriteString("\n\n")
		writeRow(&out, "File", valueStyle.Render(store.Path))
		writeRow(&out, "Saved", valueStyle.Render(snap.LastModified.Local().Format("2006-01-02 15:04:05")))
		writeRow(&out, "Boards", valueStyle.Render(fmt.Sprintf("%d (active: %s)", len(snap.Boards), snap.ActiveBoard)))
		writeRow(&out, "Tool", valueStyle.Render(string(snap.Tool.Tool)))
		out.WriteString("\n")

		for _, b := range snap.Boards {
			shapes := 0
			for _, page := range b.Pages {
				shapes += page.Len()
			}
			line := fmt.Sprintf("%d page(s), %d shape(s)", len(b.Pages), shapes)
			if b.Spec.ID == snap.ActiveBoard {
				line += " " + okStyle.Render("● active")
			}
			writeRow(&out, b.Spec.Name, valueStyle.Render(line))
		}

		fmt.Println(out.String())
		return nil
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the persisted session",
	Long:  `Delete the persisted session file and its backup. The running instance keeps its in-memory state until it next saves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		store := sessionStore(cfg)

		if !sessionForce {
			var confirm bool
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Delete persisted session?").
						Description(fmt.Sprintf("This removes %s and its backup", store.Path)).
						Value(&confirm),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}
			if !confirm {
				return nil
			}
		}

		if err := store.Reset(); err != nil {
			return fmt.Errorf("reset session: %w", err)
		}
		logger.Infof("Session removed: %s", store.Path)
		return nil
	},
}

func sessionStore(cfg *config.Config) *session.Store {
	store := session.NewStore(cfg.SessionPath())
	store.MaxFileSize = cfg.Session.MaxFileSizeBytes
	store.Backup = cfg.Session.Backup
	return store
}

func init() {
	sessionResetCmd.Flags().BoolVarP(&sessionForce, "force", "f", false, "skip the confirmation prompt")
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionResetCmd)
	rootCmd.AddCommand(sessionCmd)
}
