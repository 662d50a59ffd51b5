package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/harvinder-fsd/roster/client"
	"github.com/harvinder-fsd/roster/portfolio"
)

func newContactCmd() *cobra.Command {
	var c client.Contact

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the portfolio contact form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			id, err := portfolio.New(serviceURL).SubmitContact(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Message sent (id %d)\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&c.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&c.Email, "email", "", "Reply address")
	cmd.Flags().StringVar(&c.Subject, "subject", "", "Subject")
	cmd.Flags().StringVar(&c.Message, "message", "", "Message, at least 10 characters")
	return cmd
}

func newListContactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "List contact form submissions (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			contacts, err := portfolio.New(serviceURL, portfolio.WithToken(p.Token)).ListContacts(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range contacts {
				fmt.Fprintf(out, "%d\t%s\t%s <%s>\t%s\n", c.ID, c.CreatedAt, c.Name, c.Email, c.Subject)
				fmt.Fprintf(out, "\t%s\n", c.Message)
			}
			fmt.Fprintf(out, "Total: %d\n", len(contacts))
			return nil
		},
	}
}

func newResumeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Download the resume",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			res, err := portfolio.New(serviceURL).DownloadResume(ctx)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(res.Content)
				return err
			}
			if output == "" {
				output = filepath.Base(res.Filename)
			}
			if err := os.WriteFile(output, res.Content, 0644); err != nil {
				return fmt.Errorf("write resume: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", output, len(res.Content))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file, or - for stdout (default: server-provided name)")
	return cmd
}
