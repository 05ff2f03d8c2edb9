package client

import (
	"context"
	"sync"
	"time"
)

const defaultSearchDebounce = 300 * time.Millisecond

// ListState is a snapshot of everything a directory listing view needs.
type ListState struct {
	Page   int
	Search string

	Users      []User
	Pagination Pagination
	Loading    bool

	CreateOpen   bool
	EditTarget   *User
	DeleteTarget *User
}

type ControllerOptions struct {
	// SearchDebounce delays the refetch while the user is still typing.
	SearchDebounce time.Duration

	// OnChange receives a state snapshot after every transition.
	OnChange func(ListState)

	// OnError receives fetch and mutation failures. The last
	// successfully loaded page stays on screen.
	OnError func(error)
}

// ListController drives the paginated, searchable user list: it owns the
// current page, the search text, dialog state, and the loaded results.
// Out-of-order fetch completions are dropped so a slow response can never
// overwrite a newer one.
type ListController struct {
	client *Client

	debounce time.Duration
	onChange func(ListState)
	onError  func(error)

	mu      sync.Mutex
	state   ListState
	seq     uint64
	pending *time.Timer
}

func NewListController(c *Client, opts ControllerOptions) *ListController {
	debounce := opts.SearchDebounce
	if debounce <= 0 {
		debounce = defaultSearchDebounce
	}
	return &ListController{
		client:   c,
		debounce: debounce,
		onChange: opts.OnChange,
		onError:  opts.OnError,
		state:    ListState{Page: 1, Users: []User{}},
	}
}

// State returns a copy of the current state.
func (lc *ListController) State() ListState {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.state
}

// Refresh reloads the current page with the current search text.
func (lc *ListController) Refresh(ctx context.Context) {
	lc.mu.Lock()
	page, search := lc.state.Page, lc.state.Search
	lc.mu.Unlock()
	lc.fetch(ctx, page, search)
}

// GoToPage jumps to a page immediately.
func (lc *ListController) GoToPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	lc.mu.Lock()
	lc.cancelPendingLocked()
	lc.state.Page = page
	search := lc.state.Search
	lc.mu.Unlock()
	lc.fetch(ctx, page, search)
}

// SetSearch records new search text and schedules a debounced reload of
// page one. Typing again before the delay elapses restarts the timer.
func (lc *ListController) SetSearch(ctx context.Context, search string) {
	lc.mu.Lock()
	lc.cancelPendingLocked()
	lc.state.Search = search
	lc.pending = time.AfterFunc(lc.debounce, func() {
		lc.mu.Lock()
		if lc.state.Search != search {
			lc.mu.Unlock()
			return
		}
		lc.state.Page = 1
		lc.mu.Unlock()
		lc.fetch(ctx, 1, search)
	})
	lc.mu.Unlock()
	lc.notify()
}

func (lc *ListController) cancelPendingLocked() {
	if lc.pending != nil {
		lc.pending.Stop()
		lc.pending = nil
	}
}

// OpenCreate opens the create dialog.
func (lc *ListController) OpenCreate() {
	lc.mu.Lock()
	lc.state.CreateOpen = true
	lc.mu.Unlock()
	lc.notify()
}

// BeginEdit opens the edit dialog for a user.
func (lc *ListController) BeginEdit(u User) {
	lc.mu.Lock()
	lc.state.EditTarget = &u
	lc.mu.Unlock()
	lc.notify()
}

// BeginDelete opens the delete confirmation for a user.
func (lc *ListController) BeginDelete(u User) {
	lc.mu.Lock()
	lc.state.DeleteTarget = &u
	lc.mu.Unlock()
	lc.notify()
}

// CloseDialogs dismisses any open dialog without acting on it.
func (lc *ListController) CloseDialogs() {
	lc.mu.Lock()
	lc.state.CreateOpen = false
	lc.state.EditTarget = nil
	lc.state.DeleteTarget = nil
	lc.mu.Unlock()
	lc.notify()
}

// CreateUser submits the create form. On success the dialog closes and
// the current page reloads so the new row becomes visible.
func (lc *ListController) CreateUser(ctx context.Context, in UserInput) error {
	if _, err := lc.client.CreateUser(ctx, in); err != nil {
		lc.fail(err)
		return err
	}
	lc.CloseDialogs()
	lc.Refresh(ctx)
	return nil
}

// UpdateUser submits the edit form for the current edit target.
func (lc *ListController) UpdateUser(ctx context.Context, id int64, in UserInput) error {
	if err := lc.client.UpdateUser(ctx, id, in); err != nil {
		lc.fail(err)
		return err
	}
	lc.CloseDialogs()
	lc.Refresh(ctx)
	return nil
}

// DeleteUser confirms the pending delete.
func (lc *ListController) DeleteUser(ctx context.Context, id int64) error {
	if err := lc.client.DeleteUser(ctx, id); err != nil {
		lc.fail(err)
		return err
	}
	lc.CloseDialogs()
	lc.Refresh(ctx)
	return nil
}

func (lc *ListController) fetch(ctx context.Context, page int, search string) {
	lc.mu.Lock()
	lc.seq++
	seq := lc.seq
	lc.state.Loading = true
	lc.mu.Unlock()
	lc.notify()

	resp, err := lc.client.ListUsers(ctx, page, search)

	lc.mu.Lock()
	if seq != lc.seq {
		// A newer fetch has started; this result is stale.
		lc.mu.Unlock()
		return
	}
	lc.state.Loading = false
	if err != nil {
		lc.mu.Unlock()
		lc.notify()
		lc.fail(err)
		return
	}
	lc.state.Users = resp.Users
	lc.state.Pagination = resp.Pagination
	lc.mu.Unlock()
	lc.notify()
}

func (lc *ListController) notify() {
	if lc.onChange == nil {
		return
	}
	lc.onChange(lc.State())
}

func (lc *ListController) fail(err error) {
	if lc.onError != nil {
		lc.onError(err)
	}
}
