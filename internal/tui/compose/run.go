package compose

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/directory"
	"github.com/leadline/crmdesk/internal/errors"
)

// RunOptions configures an interactive compose session.
type RunOptions struct {
	Options
	// WatchPath, when set, is watched for changes and the directory is
	// re-listed into the open page. Only file directories are watched.
	WatchPath string
}

// Run shows the compose page until the user confirms or cancels. A
// canceled session returns the selection so far with errors.ErrCanceled.
func Run(ctx context.Context, opts RunOptions) (Result, error) {
	m := New(opts.Options)
	defer m.Close()

	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	if opts.WatchPath != "" && opts.Directory != nil {
		w, err := directory.NewWatcher(opts.Directory, opts.WatchPath, func(contacts []contact.Contact) {
			program.Send(ContactsLoadedMsg{Contacts: contacts})
		}, opts.Logger)
		if err != nil {
			// The page still works with the initial list.
			m.logger.Warn("directory watch unavailable", "error", err)
		} else {
			w.Start(ctx)
			defer w.Stop()
		}
	}

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return m.Result(), ctx.Err()
		}
		return Result{}, fmt.Errorf("compose: %w", err)
	}

	res := final.(*Model).Result()
	if !res.Confirmed {
		return res, errors.ErrCanceled
	}
	return res, nil
}
