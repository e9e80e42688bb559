package dms

import (
	"context"

	"dms-go/internal/model"
)

// DefaultCategoryColor is the color preselected in the category form.
const DefaultCategoryColor = "#3b82f6"

// ColorOption is one entry of the category color palette.
type ColorOption struct {
	Value string
	Name  string
}

// CategoryPalette lists the colors offered by the category form.
var CategoryPalette = []ColorOption{
	{Value: "#3b82f6", Name: "Blue"},
	{Value: "#ef4444", Name: "Red"},
	{Value: "#10b981", Name: "Green"},
	{Value: "#f59e0b", Name: "Yellow"},
	{Value: "#8b5cf6", Name: "Violet"},
	{Value: "#f97316", Name: "Orange"},
	{Value: "#06b6d4", Name: "Cyan"},
	{Value: "#84cc16", Name: "Lime"},
	{Value: "#ec4899", Name: "Pink"},
	{Value: "#6b7280", Name: "Gray"},
}

// EmptyCategoryForm returns the form values shown in a fresh create dialog.
func EmptyCategoryForm() model.CategoryFields {
	return model.CategoryFields{Color: DefaultCategoryColor}
}

// CategoryItem is a listed category with its delete control state.
type CategoryItem struct {
	model.Category
	CanDelete bool
}

// CategoriesView is a snapshot of the category management screen.
type CategoriesView struct {
	Phase      Phase
	Categories []CategoryItem
	CreateOpen bool
	EditOpen   bool
	Selected   *model.Category
	Form       model.CategoryFields
	Status     StatusMessage
	LoadErrors []string
}

// CategoriesController manages categories. Only admins may mount it.
type CategoriesController struct {
	page

	categories []model.Category
	createOpen bool
	editOpen   bool
	selected   *model.Category
	form       model.CategoryFields
}

// NewCategoriesController creates a category management controller.
func NewCategoriesController(deps Deps) *CategoriesController {
	return &CategoriesController{
		page: newPage(deps, RouteCategories),
		form: EmptyCategoryForm(),
	}
}

// Mount checks the session and the admin role, then fetches the categories.
// Non-admins are sent to the dashboard before any request is made.
func (c *CategoriesController) Mount(parent context.Context) error {
	session, ok := c.deps.Sessions.RequireOrRedirect(c.route)
	if !ok {
		return ErrRedirected
	}
	if !c.deps.Sessions.RequireRole(session, model.RoleAdmin) {
		return ErrRedirected
	}
	ctx, gen := c.start(parent)
	c.fetch(ctx, gen, session.Token)
	c.ready(gen)
	return nil
}

func (c *CategoriesController) fetch(ctx context.Context, gen int, token string) {
	cats, err := c.deps.Gateway.ListCategories(ctx, token)
	if err != nil {
		c.loadFailed(gen, "ListCategories", err, MsgLoadCategoriesError)
		return
	}
	c.apply(gen, func() { c.categories = cats })
}

// View returns a snapshot of the screen state.
func (c *CategoriesController) View() CategoriesView {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]CategoryItem, len(c.categories))
	for i, cat := range c.categories {
		items[i] = CategoryItem{Category: cat, CanDelete: cat.Deletable()}
	}
	var selected *model.Category
	if c.selected != nil {
		s := *c.selected
		selected = &s
	}
	return CategoriesView{
		Phase:      c.phase,
		Categories: items,
		CreateOpen: c.createOpen,
		EditOpen:   c.editOpen,
		Selected:   selected,
		Form:       c.form,
		Status:     c.status,
		LoadErrors: c.loadErrors(),
	}
}

// OpenCreate opens the create dialog.
func (c *CategoriesController) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.createOpen = true
}

// OpenEdit opens the edit dialog for category id with the form pre-filled.
// It reports false when id is not in the fetched list.
func (c *CategoriesController) OpenEdit(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat, ok := c.findLocked(id)
	if !ok {
		return false
	}
	c.selected = &cat
	c.form = model.CategoryFields{Name: cat.Name, Color: cat.Color}
	if cat.Description != nil {
		c.form.Description = *cat.Description
	}
	c.editOpen = true
	return true
}

// CloseDialogs closes both dialogs and clears the message.
func (c *CategoriesController) CloseDialogs() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.createOpen = false
	c.editOpen = false
	c.selected = nil
	c.status = StatusMessage{}
}

// EditForm applies fn to the category form.
func (c *CategoriesController) EditForm(fn func(form *model.CategoryFields)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form)
}

// Create submits the form as a new category. On success the form resets to
// its defaults and the list is fetched again.
func (c *CategoriesController) Create() error {
	session, ctx, gen, err := c.beginSubmit()
	if err != nil {
		return err
	}
	c.mu.Lock()
	fields := c.form
	c.mu.Unlock()

	cat, err := c.deps.Gateway.CreateCategory(ctx, session.Token, fields)
	if err != nil {
		c.failSubmit(gen, "CreateCategory", err, UserMessage(err, MsgCategoryCreateError))
		return err
	}
	c.deps.Logger.Info("category created", "id", cat.ID, "name", cat.Name)

	c.succeedSubmit(gen, MsgCategoryCreated, func() {
		c.form = EmptyCategoryForm()
	}, c.deps.Timing.StatusDelay, func() {
		c.createOpen = false
	})
	c.fetch(ctx, gen, session.Token)
	return nil
}

// Update submits the form for the category selected by OpenEdit.
func (c *CategoriesController) Update() error {
	c.mu.Lock()
	selected := c.selected
	fields := c.form
	c.mu.Unlock()
	if selected == nil {
		return ErrNoSelection
	}

	session, ctx, gen, err := c.beginSubmit()
	if err != nil {
		return err
	}

	cat, err := c.deps.Gateway.UpdateCategory(ctx, session.Token, selected.ID, fields)
	if err != nil {
		c.failSubmit(gen, "UpdateCategory", err, UserMessage(err, MsgCategoryUpdateError))
		return err
	}
	c.deps.Logger.Info("category updated", "id", cat.ID, "name", cat.Name)

	c.succeedSubmit(gen, MsgCategoryUpdated, nil, c.deps.Timing.StatusDelay, func() {
		c.editOpen = false
		c.selected = nil
	})
	c.fetch(ctx, gen, session.Token)
	return nil
}

// CanDelete reports whether the delete control for category id is enabled.
func (c *CategoriesController) CanDelete(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cat, ok := c.findLocked(id)
	return ok && cat.Deletable()
}

// Delete removes category id once confirm approves its name. Categories
// that still hold documents are refused without a request, as is a
// declined confirmation.
func (c *CategoriesController) Delete(id int64, confirm func(name string) bool) error {
	c.mu.Lock()
	cat, ok := c.findLocked(id)
	c.mu.Unlock()
	if !ok {
		return ErrNoSelection
	}
	if !cat.Deletable() {
		c.setError(MsgCategoryNotEmpty)
		return ErrDeleteDisabled
	}
	if confirm != nil && !confirm(cat.Name) {
		return nil
	}

	session, ctx, gen, err := c.beginSubmit()
	if err != nil {
		return err
	}
	if err := c.deps.Gateway.DeleteCategory(ctx, session.Token, id); err != nil {
		c.failSubmit(gen, "DeleteCategory", err, UserMessage(err, MsgCategoryDeleteError))
		return err
	}
	c.deps.Logger.Info("category deleted", "id", id, "name", cat.Name)

	c.succeedSubmit(gen, MsgCategoryDeleted, nil, c.deps.Timing.DeleteStatusDelay, nil)
	c.fetch(ctx, gen, session.Token)
	return nil
}

func (c *CategoriesController) findLocked(id int64) (model.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return model.Category{}, false
}

// Logout clears the session and navigates to the landing page.
func (c *CategoriesController) Logout() error {
	return logout(c.deps, &c.page)
}
