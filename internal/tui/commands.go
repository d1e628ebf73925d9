package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/listing"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

var errNoQuerier = fmt.Errorf("%w: transaction backend not configured", common.ErrMissingConfig)

// restoreSession confirms the saved credential, if any.
func (m Model) restoreSession() tea.Cmd {
	sess, base, timeout := m.session, m.ctx, m.config.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()

		return sessionRestoredMsg{err: sess.Restore(ctx)}
	}
}

// signIn exchanges credentials for a session.
func (m Model) signIn(creds model.Credentials) tea.Cmd {
	sess, base, timeout := m.session, m.ctx, m.config.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()

		user, err := sess.Login(ctx, creds)
		return loginResultMsg{user: user, err: err}
	}
}

// fetchTransactions performs one listing request.
func (m Model) fetchTransactions(req listing.Request, school bool, generation int) tea.Cmd {
	q, base, timeout := m.querier, m.ctx, m.config.Timeout
	return func() tea.Msg {
		if q == nil {
			return transactionsLoadedMsg{
				result:     listing.Result{Seq: req.Seq, Err: errNoQuerier},
				school:     school,
				generation: generation,
			}
		}

		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()

		return transactionsLoadedMsg{
			result:     listing.Fetch(ctx, q, req),
			school:     school,
			generation: generation,
		}
	}
}

// fetchStats loads the aggregate summary.
func (m Model) fetchStats(seq uint64) tea.Cmd {
	q, base, timeout := m.querier, m.ctx, m.config.Timeout
	return func() tea.Msg {
		if q == nil {
			return statsLoadedMsg{seq: seq, err: errNoQuerier}
		}

		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()

		stats, err := q.Stats(ctx)
		return statsLoadedMsg{seq: seq, stats: stats, err: err}
	}
}

// lookupStatus loads one order by its id.
func (m Model) lookupStatus(orderID string, seq uint64) tea.Cmd {
	q, base, timeout := m.querier, m.ctx, m.config.Timeout
	return func() tea.Msg {
		if q == nil {
			return statusLoadedMsg{seq: seq, orderID: orderID, err: errNoQuerier}
		}

		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()

		txn, err := q.TransactionStatus(ctx, orderID)
		return statusLoadedMsg{seq: seq, orderID: orderID, transaction: txn, err: err}
	}
}
