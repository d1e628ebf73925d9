package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/thisispriyanshii/edviron-frontend/internal/api"
	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/config"
	"github.com/thisispriyanshii/edviron-frontend/internal/session"
)

// dashboardCommand is the one command that takes over the terminal.
const dashboardCommand = "dashboard"

// envKeyReplacer maps "api.base_url" to EDVIRON_API_BASE_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

// TimeoutMessage replaces transport errors caused by a slow backend.
const TimeoutMessage = "The server did not respond in time. Please try again."

// errNotSignedIn is returned by commands that need a saved credential.
var errNotSignedIn = common.NewUserError(`Not signed in. Run "edviron login" first.`, common.ErrAuth)

// backend is the REST client together with the session it authenticates with.
type backend struct {
	client  *api.Client
	session *session.Manager
}

// newBackend wires the API client and the persisted session for cfg. The
// client reads its bearer token from the session, and the session signs in
// through the client.
func newBackend(cfg config.Config) (*backend, error) {
	manager := session.NewManager(session.NewFileStore(cfg.Session.Path))

	client, err := api.NewClient(api.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		UserAgent:         "edviron-cli/" + version,
	}, manager)
	if err != nil {
		return nil, err
	}
	manager.SetBackend(client)

	return &backend{client: client, session: manager}, nil
}

// signedIn restores the saved session and fails unless it is still valid.
func signedIn(ctx context.Context, cfg config.Config) (*backend, error) {
	b, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	if err := b.session.Restore(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if b.session.State() != session.Authenticated {
		return nil, errNotSignedIn
	}
	return b, nil
}

// authFailure turns a rejected credential into the sign-in hint and drops
// the saved session.
func (b *backend) authFailure(err error) error {
	if !common.IsAuth(err) {
		return err
	}
	b.session.Invalidate()
	return common.NewUserError(`Session expired. Run "edviron login" to sign in again.`, err)
}

// errorMessage is the line printed for a failed command. A UserError speaks
// for itself; other errors show their server or validation message.
func errorMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	if api.IsTimeout(err) {
		return TimeoutMessage
	}
	return common.Message(err, err.Error())
}
