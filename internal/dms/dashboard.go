package dms

import (
	"context"
	"sync"

	"dms-go/internal/model"
)

// RecentDocumentsLimit is how many documents the dashboard lists.
const RecentDocumentsLimit = 5

// DashboardView is a snapshot of the dashboard screen.
type DashboardView struct {
	Phase      Phase
	User       model.User
	Stats      *model.Stats
	Recent     []model.Document
	LoadErrors []string
}

// ShowCategoryAdmin reports whether the category-management entry is offered.
func (v DashboardView) ShowCategoryAdmin() bool {
	return v.User.IsAdmin()
}

// DashboardController shows aggregate statistics and the most recent documents.
type DashboardController struct {
	page
	recentLimit int

	user   model.User
	stats  *model.Stats
	recent []model.Document
}

// NewDashboardController creates a dashboard controller. recentLimit <= 0
// selects RecentDocumentsLimit.
func NewDashboardController(deps Deps, recentLimit int) *DashboardController {
	if recentLimit <= 0 {
		recentLimit = RecentDocumentsLimit
	}
	return &DashboardController{page: newPage(deps, RouteDashboard), recentLimit: recentLimit}
}

// Mount checks the session and fetches stats and recent documents
// concurrently. Either fetch may fail without blocking the other.
func (c *DashboardController) Mount(parent context.Context) error {
	session, ok := c.deps.Sessions.RequireOrRedirect(c.route)
	if !ok {
		return ErrRedirected
	}
	ctx, gen := c.start(parent)
	c.apply(gen, func() {
		c.user = session.User
		c.stats = nil
		c.recent = nil
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, err := c.deps.Gateway.FetchStats(ctx, session.Token)
		if err != nil {
			c.loadFailed(gen, "FetchStats", err, MsgLoadStatsError)
			return
		}
		c.apply(gen, func() { c.stats = stats })
	}()
	go func() {
		defer wg.Done()
		docs, err := c.deps.Gateway.ListDocuments(ctx, session.Token, model.DocumentFilter{PerPage: c.recentLimit})
		if err != nil {
			c.loadFailed(gen, "ListDocuments", err, MsgLoadDocumentsError)
			return
		}
		c.apply(gen, func() { c.recent = docs.Documents })
	}()
	wg.Wait()

	c.ready(gen)
	return nil
}

// View returns a snapshot of the screen state.
func (c *DashboardController) View() DashboardView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DashboardView{
		Phase:      c.phase,
		User:       c.user,
		Stats:      c.stats,
		Recent:     append([]model.Document(nil), c.recent...),
		LoadErrors: c.loadErrors(),
	}
}

// Logout clears the session and navigates to the landing page.
func (c *DashboardController) Logout() error {
	return logout(c.deps, &c.page)
}

// logout is shared by every screen that offers a logout action.
func logout(deps Deps, p *page) error {
	p.Unmount()
	if err := deps.Sessions.Clear(); err != nil {
		deps.Logger.Error("clearing session failed", "error", err)
		return err
	}
	deps.Logger.Info("logged out")
	deps.Navigator.Navigate(RouteHome)
	return nil
}
