package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/harvinder-fsd/roster/localstore"
)

var localDBPath string

// resolveLocalDB returns --local-db, falling back to the store's default
// location under ~/.roster.
func resolveLocalDB() (string, error) {
	if localDBPath != "" {
		return localDBPath, nil
	}
	return localstore.DBPath()
}

// openLocal opens the local store, seeding it on first use.
func openLocal() (*localstore.DB, error) {
	path, err := resolveLocalDB()
	if err != nil {
		return nil, err
	}
	db, err := localstore.Open(path, localstore.WithLogger(log.Logger))
	if err != nil {
		return nil, err
	}
	if err := db.Init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// localOwner is the user id local entries are filed under.
func localOwner() string {
	if p, err := loadProfile(profilePath); err == nil && p.Username != "" {
		return p.Username
	}
	return "local"
}

func newLocalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Inspect and edit app data kept on this device",
	}
	cmd.PersistentFlags().StringVar(&localDBPath, "local-db", os.Getenv("ROSTER_LOCAL_DB"), "Local app data file (default ~/.roster/vyb.db)")

	cmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List stored keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openLocal()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			keys, err := db.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all local data",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveLocalDB()
			if err != nil {
				return err
			}
			db, err := localstore.Open(path, localstore.WithLogger(log.Logger))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			if err := db.ClearAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Local data cleared")
			return nil
		},
	})
	cmd.AddCommand(newNotesCmd())
	cmd.AddCommand(newNotificationsCmd())
	cmd.AddCommand(newMoodCmd())
	return cmd
}

func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "notes", Short: "Personal notes"}

	var title, content string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openLocal()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			n, err := db.Notes().Add(localstore.Note{UserID: localOwner(), Title: title, Content: content})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note saved: %s\n", n.ID)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "Title")
	add.Flags().StringVar(&content, "content", "", "Body")
	_ = add.MarkFlagRequired("title")

	list := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openLocal()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			owner := localOwner()
			notes, err := db.Notes().Where(func(n localstore.Note) bool { return n.UserID == owner })
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, n := range notes {
				fmt.Fprintf(out, "%s\t%s\t%s\n", n.ID, n.UpdatedAt.Format("2006-01-02 15:04"), n.Title)
			}
			fmt.Fprintf(out, "Total: %d\n", len(notes))
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openLocal()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			ok, err := db.Notes().Delete(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("note %s not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Note deleted")
			return nil
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}

func newNotificationsCmd() *cobra.Command {
	var unreadOnly, markRead bool

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openLocal()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			repo := db.Notifications()
			owner := localOwner()

			var list []localstore.Notification
			if unreadOnly {
				list, err = repo.Unread(owner)
			} else {
				list, err = repo.Where(func(n localstore.Notification) bool { return n.UserID == owner })
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, n := range list {
				mark := " "
				if !n.Read {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %s\t%s\t%s\n", mark, n.ID, n.Title, n.Message)
			}
			if markRead {
				changed, err := repo.MarkAllRead(owner)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Marked %d read\n", changed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread notifications")
	cmd.Flags().BoolVar(&markRead, "mark-read", false, "Mark all as read after listing")
	return cmd
}

func newMoodCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "mood <mood>",
		Short: "Record how you feel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openLocal()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			owner := localOwner()
			m, err := db.Moods().Add(localstore.Mood{UserID: owner, Mood: args[0], Note: note})
			if err != nil {
				return err
			}
			if _, err := db.Activity().Add(localstore.Activity{UserID: owner, Type: "mood", Details: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mood saved: %s\n", m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	return cmd
}
