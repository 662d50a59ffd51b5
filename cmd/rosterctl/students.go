package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/harvinder-fsd/roster/client"
	"github.com/harvinder-fsd/roster/collection"
)

func newStudentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "List and edit student records",
	}
	cmd.AddCommand(newListStudentsCmd())
	cmd.AddCommand(newAddStudentCmd())
	cmd.AddCommand(newUpdateStudentCmd())
	cmd.AddCommand(newDeleteStudentCmd())
	return cmd
}

// studentSession is a loaded student collection bound to the saved session.
type studentSession struct {
	client *client.Client
	rc     *collection.Reconciler[int, client.Student]
}

func (s *studentSession) Close() { _ = s.client.Close() }

func (s *studentSession) items() []client.Student { return s.rc.Store().Snapshot().Items }

// openStudents signs in from the saved profile (when present) and loads the
// full collection.
func openStudents(ctx context.Context, retries int) (*studentSession, error) {
	c, err := client.New(serviceURL)
	if err != nil {
		return nil, err
	}
	sess, err := restoreSession(c, false)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	rc := client.NewStudentReconciler(c.Students(sess), collection.WithLogger(log.Logger))
	if err := withRetry(ctx, retries, func() error { return rc.Load(ctx) }); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &studentSession{client: c, rc: rc}, nil
}

func newListStudentsCmd() *cobra.Command {
	var search, class, sortKey string
	var desc, asJSON bool
	var retries int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List students, optionally searched, filtered by class and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			s, err := openStudents(ctx, retries)
			if err != nil {
				return err
			}
			defer s.Close()

			all := s.items()
			view := collection.Project(all, client.StudentQuery(search, class, sortKey, desc), client.StudentField)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			for _, st := range view {
				fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\t%s\n", st.ID, st.RollNumber, st.Name, st.Class, st.Email, st.Phone)
			}
			fmt.Fprintf(out, "Showing %d of %d\n", len(view), len(all))
			fmt.Fprintf(out, "Classes: %s\n", strings.Join(collection.Distinct(all, "class", client.StudentField), ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive match on name, roll number or email")
	cmd.Flags().StringVar(&class, "class", "", "Only show this class")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort by name, rollNumber, class, email, phone or address")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().IntVar(&retries, "retries", 0, "Retry recoverable failures this many times")
	return cmd
}

// studentFlags binds one flag per editable field.
type studentFlags struct {
	name, rollNumber, class, email, phone, address string
}

func (f *studentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.rollNumber, "roll-number", "", "Roll number, unique")
	cmd.Flags().StringVar(&f.class, "class", "", "Class")
	cmd.Flags().StringVar(&f.email, "email", "", "Email, unique")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone")
	cmd.Flags().StringVar(&f.address, "address", "", "Address")
}

// apply copies the flags the user set onto s.
func (f *studentFlags) apply(cmd *cobra.Command, s *client.Student) {
	set := func(flag string, dst *string, v string) {
		if cmd.Flags().Changed(flag) {
			*dst = v
		}
	}
	set("name", &s.Name, f.name)
	set("roll-number", &s.RollNumber, f.rollNumber)
	set("class", &s.Class, f.class)
	set("email", &s.Email, f.email)
	set("phone", &s.Phone, f.phone)
	set("address", &s.Address, f.address)
}

func newAddStudentCmd() *cobra.Command {
	var f studentFlags
	var retries int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a student",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			s, err := openStudents(ctx, retries)
			if err != nil {
				return err
			}
			defer s.Close()

			var st client.Student
			f.apply(cmd, &st)
			if err := client.ValidateStudent(st, s.items()).Err(); err != nil {
				return err
			}

			var created client.Student
			err = withRetry(ctx, retries, func() error {
				var err error
				created, err = s.rc.Create(ctx, st)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Student created: %d - %s\n", created.ID, created.Name)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&retries, "retries", 0, "Retry recoverable failures this many times")
	return cmd
}

func newUpdateStudentCmd() *cobra.Command {
	var f studentFlags
	var retries int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a student; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			s, err := openStudents(ctx, retries)
			if err != nil {
				return err
			}
			defer s.Close()

			st, ok := s.rc.Store().Get(id)
			if !ok {
				return fmt.Errorf("student %d not found", id)
			}
			f.apply(cmd, &st)
			if err := client.ValidateStudent(st, s.items()).Err(); err != nil {
				return err
			}

			var updated client.Student
			err = withRetry(ctx, retries, func() error {
				var err error
				updated, err = s.rc.Update(ctx, id, st)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Student updated: %d - %s\n", updated.ID, updated.Name)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&retries, "retries", 0, "Retry recoverable failures this many times")
	return cmd
}

func newDeleteStudentCmd() *cobra.Command {
	var retries int

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			s, err := openStudents(ctx, retries)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := withRetry(ctx, retries, func() error { return s.rc.Delete(ctx, id) }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Student deleted")
			return nil
		},
	}
	cmd.Flags().IntVar(&retries, "retries", 0, "Retry recoverable failures this many times")
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
