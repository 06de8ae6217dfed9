package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/madhurinidan/clinic-web/internal/access"
	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/spf13/cobra"
)

var errNotSignedIn = errors.New("not signed in, run `clinicctl login` first")

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				line, err := prompt(cmd, "Email: ")
				if err != nil {
					return err
				}
				email = line
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				pw, err := a.opts.ReadPassword()
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = string(pw)
			}

			home, err := a.auth.Login(cmd.Context(), a.store, models.LoginRequest{Email: email, Password: password})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			s := a.store.Read()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s). Home: %s\n", s.Name, s.Role, home)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Logout(a.store); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.store.Read()
			if !s.Authenticated() {
				return errNotSignedIn
			}
			out := cmd.OutOrStdout()
			if !remote {
				fmt.Fprintf(out, "%s <%s> role=%s\n", s.Name, s.Email, s.Role)
				return nil
			}

			user, err := a.auth.CurrentUser(cmd.Context())
			if err != nil {
				return a.checkRejected(err)
			}
			fmt.Fprintf(out, "%s <%s> role=%s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the clinic API instead of reading the session file")
	return cmd
}

func (a *app) doctorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctors",
		Short: "List doctors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doctors, err := a.client.ListDoctors(cmd.Context())
			if err != nil {
				return a.checkRejected(err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIALTY\tPHONE")
			for _, d := range doctors {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Specialty, d.Phone)
			}
			return w.Flush()
		},
	}
}

func (a *app) appointmentsCmd() *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List appointments visible to the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.store.Read().Authenticated() {
				return errNotSignedIn
			}
			list, err := a.appointments.List(cmd.Context(), page, limit)
			if err != nil {
				return a.checkRejected(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPATIENT\tDOCTOR\tDATE\tSTATUS")
			for _, appt := range list.Appointments {
				status := appt.Status
				if status == "" {
					status = "booked"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					appt.ID, appt.Name, appt.Doctor.Name, appt.Date.In(a.loc).Format("2006-01-02 15:04"), status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if list.Enveloped {
				fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d\n", max(page, 1), list.Pages)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number (0 lists everything)")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	return cmd
}

func (a *app) bookCmd() *cobra.Command {
	var form models.BookingForm
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment for the signed-in patient",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.store.Read()
			if decision := access.RequireRole(access.RolePatient, s); !decision.Allow {
				if !s.Authenticated() {
					return errNotSignedIn
				}
				return fmt.Errorf("only patients can book appointments (signed in as %s)", s.Role)
			}
			if form.Name == "" {
				form.Name = s.Name
			}

			if err := a.appointments.Book(cmd.Context(), s.Email, form); err != nil {
				return a.checkRejected(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Appointment booked successfully!")
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&form.DoctorID, "doctor", "", "doctor id (see `clinicctl doctors`)")
	flags.StringVar(&form.Date, "date", "", "date, YYYY-MM-DD")
	flags.StringVar(&form.Time, "time", "", "time, HH:MM")
	flags.StringVar(&form.Name, "name", "", "patient name (defaults to the account name)")
	flags.StringVar(&form.Phone, "phone", "", "contact phone")
	flags.StringVar(&form.Notes, "notes", "", "notes for the doctor")
	for _, name := range []string{"doctor", "date", "time", "phone"} {
		_ = cmd.MarkFlagRequired(name) //nolint:errcheck
	}
	return cmd
}

func (a *app) cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <appointment-id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.store.Read().Authenticated() {
				return errNotSignedIn
			}
			if err := a.appointments.Cancel(cmd.Context(), args[0]); err != nil {
				return a.checkRejected(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Appointment cancelled")
			return nil
		},
	}
}

func (a *app) routeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <path>",
		Short: "Show where the web frontend would send the stored session for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), describeRoute(args[0], a.store.Read()))
			return nil
		},
	}
}

func describeRoute(path string, s session.Session) string {
	policy := access.Classify(path)
	decision := policy.Evaluate(s)
	if decision.Allow {
		return fmt.Sprintf("%s [%s]: allow", path, policy.Name())
	}
	return fmt.Sprintf("%s [%s]: redirect %s", path, policy.Name(), decision.Redirect)
}

func prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
