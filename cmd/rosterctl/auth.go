package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/harvinder-fsd/roster/client"
	"github.com/harvinder-fsd/roster/localstore"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("ROSTER_PASSWORD")
			}
			c, err := client.New(serviceURL)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			sess, err := c.SignIn(ctx, username, password)
			if err != nil {
				return err
			}
			p := &profile{
				ServiceURL: c.BaseURL(),
				Token:      sess.Token(),
				UserID:     sess.User.ID,
				Username:   sess.User.Username,
				Role:       sess.User.Role,
			}
			if err := saveProfile(profilePath, p); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}
			log.Debug().Str("profile", profilePath).Msg("session saved")
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", sess.User.Username, sess.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (defaults to $ROSTER_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session and wipe local app data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := removeProfile(profilePath); err != nil {
				return fmt.Errorf("remove profile: %w", err)
			}
			path, err := resolveLocalDB()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				db, err := localstore.Open(path, localstore.WithLogger(log.Logger))
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				if err := db.ClearAll(); err != nil {
					return fmt.Errorf("clear local data: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
	cmd.Flags().StringVar(&localDBPath, "local-db", os.Getenv("ROSTER_LOCAL_DB"), "Local app data file (default ~/.roster/vyb.db)")
	return cmd
}

func newListUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(serviceURL)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			sess, err := restoreSession(c, true)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			users, err := c.ListUsers(ctx, sess)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, u := range users {
				fmt.Fprintf(out, "%d\t%s\t%s\n", u.ID, u.Username, u.Role)
			}
			fmt.Fprintf(out, "Total: %d\n", len(users))
			return nil
		},
	}
}
