package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ticketboard/internal/api"
	"ticketboard/internal/client"
	"ticketboard/internal/config"
	"ticketboard/internal/session"
	"ticketboard/pkg/logger"
)

var errNotSignedIn = errors.New("not signed in, run `ticketboard login` first")

// app carries the flag values and the wiring shared by every command.
type app struct {
	cfg      config.Client
	logLevel string
	format   string
	out      io.Writer

	log  zerolog.Logger
	sess *session.Session
	svc  *api.Services
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{cfg: config.LoadClient(), out: out}

	root := &cobra.Command{
		Use:           "ticketboard",
		Short:         "Work with support tickets from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect()
		},
	}
	root.SetOut(out)

	f := root.PersistentFlags()
	f.StringVar(&a.cfg.APIURL, "api-url", a.cfg.APIURL, "backend base URL (TICKETBOARD_API_URL)")
	f.StringVar(&a.cfg.SessionFile, "session-file", a.cfg.SessionFile, "where the session token is kept (TICKETBOARD_SESSION_FILE)")
	f.DurationVar(&a.cfg.Timeout, "timeout", a.cfg.Timeout, "per-request timeout (TICKETBOARD_TIMEOUT)")
	f.StringVar(&a.logLevel, "log-level", "warn", "log level written to stderr")
	f.StringVarP(&a.format, "output", "o", formatTable, "output format: table, json or yaml")

	root.AddCommand(
		newUICmd(a),
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newTicketsCmd(a),
		newProfileCmd(a),
		newHealthCmd(a),
	)
	return root
}

// connect builds the session, HTTP client and services from the parsed
// flags. It runs before every subcommand.
func (a *app) connect() error {
	switch a.format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q", a.format)
	}

	a.log = logger.NewConsole(os.Stderr, a.logLevel)
	store := session.NewFileStore(a.cfg.SessionFile)
	sess, err := session.New(store)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	c, err := client.New(a.cfg, sess, a.log)
	if err != nil {
		return err
	}
	a.sess = sess
	a.svc = api.New(c)
	a.log.Debug().Str("api", c.BaseURL()).Str("session", store.Path()).Msg("client ready")
	return nil
}

func (a *app) requireSession() error {
	if !a.sess.Authenticated() {
		return errNotSignedIn
	}
	return nil
}

// signedIn is a PreRunE for commands that need a stored token.
func (a *app) signedIn(*cobra.Command, []string) error { return a.requireSession() }
