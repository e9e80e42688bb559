package dms

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"dms-go/internal/model"
)

// UploadForm holds the upload dialog fields. CategoryID is the decimal id of
// the chosen category or empty; Tags is a comma-separated list that the
// server splits.
type UploadForm struct {
	File        *Path
	Title       string
	Description string
	CategoryID  string
	Tags        string
}

// CanSubmit reports whether the upload control is enabled.
func (f UploadForm) CanSubmit() bool {
	return f.File != nil
}

// DocumentsView is a snapshot of the documents screen.
type DocumentsView struct {
	Phase            Phase
	Documents        []model.Document
	TotalFetched     int
	Categories       []model.Category
	SearchTerm       string
	SelectedCategory string
	UploadOpen       bool
	Form             UploadForm
	CanSubmit        bool
	Status           StatusMessage
	LoadErrors       []string
}

// DocumentsController lists, filters, uploads and downloads documents.
type DocumentsController struct {
	page
	picker   FilePicker
	sink     Sink
	pageSize int

	documents        []model.Document
	categories       []model.Category
	searchTerm       string
	selectedCategory string
	uploadOpen       bool
	form             UploadForm
}

// NewDocumentsController creates a documents controller. pageSize <= 0 leaves
// the page size to the server.
func NewDocumentsController(deps Deps, picker FilePicker, sink Sink, pageSize int) *DocumentsController {
	return &DocumentsController{
		page:     newPage(deps, RouteDocuments),
		picker:   picker,
		sink:     sink,
		pageSize: pageSize,
	}
}

// Mount checks the session and fetches documents and categories.
// openUpload opens the upload dialog once mounted.
func (c *DocumentsController) Mount(parent context.Context, openUpload bool) error {
	session, ok := c.deps.Sessions.RequireOrRedirect(c.route)
	if !ok {
		return ErrRedirected
	}
	ctx, gen := c.start(parent)
	c.fetch(ctx, gen, session.Token)
	c.apply(gen, func() {
		if openUpload {
			c.uploadOpen = true
		}
	})
	c.ready(gen)
	return nil
}

// fetch loads documents and categories concurrently and replaces the
// local lists wholesale.
func (c *DocumentsController) fetch(ctx context.Context, gen int, token string) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		docs, err := c.deps.Gateway.ListDocuments(ctx, token, model.DocumentFilter{PerPage: c.pageSize})
		if err != nil {
			c.loadFailed(gen, "ListDocuments", err, MsgLoadDocumentsError)
			return
		}
		c.apply(gen, func() { c.documents = docs.Documents })
	}()
	go func() {
		defer wg.Done()
		cats, err := c.deps.Gateway.ListCategories(ctx, token)
		if err != nil {
			c.loadFailed(gen, "ListCategories", err, MsgLoadCategoriesError)
			return
		}
		c.apply(gen, func() { c.categories = cats })
	}()
	wg.Wait()
}

// View returns a snapshot with the filter applied to the fetched documents.
func (c *DocumentsController) View() DocumentsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DocumentsView{
		Phase:            c.phase,
		Documents:        FilterDocuments(c.documents, c.searchTerm, c.selectedCategory),
		TotalFetched:     len(c.documents),
		Categories:       append([]model.Category(nil), c.categories...),
		SearchTerm:       c.searchTerm,
		SelectedCategory: c.selectedCategory,
		UploadOpen:       c.uploadOpen,
		Form:             c.form,
		CanSubmit:        c.form.CanSubmit(),
		Status:           c.status,
		LoadErrors:       c.loadErrors(),
	}
}

// SetSearchTerm updates the search filter.
func (c *DocumentsController) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
}

// SelectCategory updates the category filter; empty selects all.
func (c *DocumentsController) SelectCategory(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedCategory = id
}

// OpenUpload opens the upload dialog.
func (c *DocumentsController) OpenUpload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploadOpen = true
}

// CloseUpload closes the upload dialog and clears its message. Form fields are kept.
func (c *DocumentsController) CloseUpload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploadOpen = false
	c.status = StatusMessage{}
}

// EditForm applies fn to the upload form.
func (c *DocumentsController) EditForm(fn func(form *UploadForm)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form)
}

// SelectFile resolves rawPath and makes it the file to upload. The title
// defaults to the file name without its extension when it is still empty.
func (c *DocumentsController) SelectFile(rawPath string) error {
	path, err := c.picker.Resolve(rawPath)
	if err != nil {
		c.setError(err.Error())
		return &ValidationError{Message: err.Error()}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.File = path
	if c.form.Title == "" {
		c.form.Title = DefaultTitle(path.Name())
	}
	return nil
}

// Upload submits the upload form. On failure the dialog, the selected file
// and all fields are kept so the user can retry.
func (c *DocumentsController) Upload() error {
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	if !form.CanSubmit() {
		c.setError(MsgNoFile)
		return &ValidationError{Message: MsgNoFile}
	}
	var categoryID int64
	if s := strings.TrimSpace(form.CategoryID); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			c.setError(MsgBadCategory)
			return &ValidationError{Message: MsgBadCategory}
		}
		categoryID = id
	}

	session, ctx, gen, err := c.beginSubmit()
	if err != nil {
		return err
	}

	f, err := c.picker.Open(form.File)
	if err != nil {
		c.failSubmit(gen, "UploadDocument", err, MsgUploadError)
		return fmt.Errorf("opening %s: %w", form.File, err)
	}
	defer f.Close()

	doc, err := c.deps.Gateway.UploadDocument(ctx, session.Token, f, model.UploadRequest{
		Filename:    form.File.Name(),
		Title:       form.Title,
		Description: form.Description,
		CategoryID:  categoryID,
		Tags:        form.Tags,
	})
	if err != nil {
		c.failSubmit(gen, "UploadDocument", err, UserMessage(err, MsgUploadError))
		return err
	}
	c.deps.Logger.Info("document uploaded", "id", doc.ID, "filename", doc.Filename)

	c.succeedSubmit(gen, MsgUploadSuccess, func() {
		c.form = UploadForm{}
	}, c.deps.Timing.StatusDelay, func() {
		c.uploadOpen = false
	})
	c.fetch(ctx, gen, session.Token)
	return nil
}

// Download fetches the body of document id and saves it to the sink under
// the document's file name. It returns the saved location.
func (c *DocumentsController) Download(id int64) (string, error) {
	session, ctx, gen, err := c.beginSubmit()
	if err != nil {
		return "", err
	}

	name, err := c.filenameFor(ctx, session.Token, id)
	if err != nil {
		c.failSubmit(gen, "GetDocument", err, MsgDownloadError)
		return "", err
	}

	body, err := c.deps.Gateway.DownloadDocument(ctx, session.Token, id)
	if err != nil {
		c.failSubmit(gen, "DownloadDocument", err, MsgDownloadError)
		return "", err
	}
	defer body.Close()

	location, err := c.sink.Save(ctx, name, body)
	if err != nil {
		c.failSubmit(gen, "DownloadDocument", err, MsgDownloadError)
		return "", fmt.Errorf("saving %s: %w", name, err)
	}
	c.deps.Logger.Info("document downloaded", "id", id, "location", location)

	c.apply(gen, func() {
		c.phase = PhaseReady
	})
	return location, nil
}

// Delete removes document id after confirm approves its title, then
// re-fetches the list. A declined confirmation makes no request.
func (c *DocumentsController) Delete(id int64, confirm func(title string) bool) error {
	c.mu.Lock()
	title := strconv.FormatInt(id, 10)
	for _, doc := range c.documents {
		if doc.ID == id {
			title = doc.Title
			break
		}
	}
	c.mu.Unlock()

	if confirm != nil && !confirm(title) {
		return nil
	}

	session, ctx, gen, err := c.beginSubmit()
	if err != nil {
		return err
	}
	if err := c.deps.Gateway.DeleteDocument(ctx, session.Token, id); err != nil {
		c.failSubmit(gen, "DeleteDocument", err, UserMessage(err, MsgDocumentDeleteError))
		return err
	}
	c.deps.Logger.Info("document deleted", "id", id)

	c.succeedSubmit(gen, MsgDocumentDeleted, nil, c.deps.Timing.DeleteStatusDelay, nil)
	c.fetch(ctx, gen, session.Token)
	return nil
}

// filenameFor looks the document up in the fetched list, falling back to the
// server when it is not on the current page.
func (c *DocumentsController) filenameFor(ctx context.Context, token string, id int64) (string, error) {
	c.mu.Lock()
	for _, doc := range c.documents {
		if doc.ID == id {
			c.mu.Unlock()
			return doc.Filename, nil
		}
	}
	c.mu.Unlock()

	doc, err := c.deps.Gateway.GetDocument(ctx, token, id)
	if err != nil {
		return "", err
	}
	return doc.Filename, nil
}

// Logout clears the session and navigates to the landing page.
func (c *DocumentsController) Logout() error {
	return logout(c.deps, &c.page)
}
