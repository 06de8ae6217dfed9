// Package cli implements clinicctl, a terminal client for the clinic API that
// shares the web frontend's session, API client, services and route guards.
// The session is persisted in a file between invocations.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/madhurinidan/clinic-web/internal/apiclient"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/madhurinidan/clinic-web/pkg/httpclient"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Options are the process-level inputs of the CLI
type Options struct {
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	HTTPClient httpclient.Client
	// ReadPassword reads a password without echo
	ReadPassword func() ([]byte, error)
}

// DefaultOptions wires the CLI to the terminal
func DefaultOptions() Options {
	return Options{
		In:         os.Stdin,
		Out:        os.Stdout,
		Err:        os.Stderr,
		HTTPClient: httpclient.NewStandardClient(),
		ReadPassword: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
	}
}

// app is built once flags are parsed
type app struct {
	opts         Options
	store        *session.FileStore
	client       *apiclient.Client
	auth         *services.AuthService
	appointments *services.AppointmentService
	loc          *time.Location
}

// NewRootCommand builds the clinicctl command tree
func NewRootCommand(opts Options) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CLINIC")
	v.AutomaticEnv()
	v.SetDefault("env", "production")
	v.SetDefault("timezone", "Asia/Kolkata")

	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Command-line client for the Madhuri Nidan Kendra clinic",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(v)
		},
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	flags := root.PersistentFlags()
	flags.String("api", "", "clinic API base URL (default derived from --env)")
	flags.String("env", "production", "environment used to pick the API base URL")
	flags.String("session-file", "", "session file (default in the user config dir)")
	flags.String("timezone", "Asia/Kolkata", "timezone for booking dates and times")
	flags.Bool("verbose", false, "log API calls to stderr")
	for _, name := range []string{"api", "env", "session-file", "timezone", "verbose"} {
		_ = v.BindPFlag(name, flags.Lookup(name)) //nolint:errcheck
	}
	_ = v.BindEnv("session-file", "CLINIC_SESSION_FILE") //nolint:errcheck

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.doctorsCmd(),
		a.appointmentsCmd(),
		a.bookCmd(),
		a.cancelCmd(),
		a.routeCmd(),
	)
	return root
}

func (a *app) init(v *viper.Viper) error {
	if v.GetBool("verbose") {
		if err := logger.Initialize(logger.Config{Level: "debug", Environment: "development", ServiceName: "clinicctl"}); err != nil {
			return err
		}
	}

	path := v.GetString("session-file")
	if path == "" {
		var err error
		if path, err = session.DefaultFilePath(); err != nil {
			return err
		}
	}
	a.store = session.NewFileStore(path)

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	a.loc = loc

	baseURL := strings.TrimRight(v.GetString("api"), "/")
	if baseURL == "" {
		baseURL = apiclient.BaseURLFor(v.GetString("env"))
	}

	store := a.store
	a.client = apiclient.New(baseURL, a.opts.HTTPClient, func(context.Context) string {
		return store.Read().Token
	})
	a.auth = services.NewAuthService(a.client)
	a.appointments = services.NewAppointmentService(a.client, loc)
	return nil
}

// checkRejected signs out when the clinic API rejected the stored token
func (a *app) checkRejected(err error) error {
	if err == nil || !errors.Is(err, apiclient.ErrUnauthorized) {
		return err
	}
	if clearErr := a.store.Clear(); clearErr != nil {
		return errors.Join(err, clearErr)
	}
	return fmt.Errorf("session expired, run `clinicctl login` again: %w", err)
}
