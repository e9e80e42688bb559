package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"dms-go/internal/dms"
	"dms-go/internal/model"
)

// FakeGateway is an in-memory stand-in for the API server. Mutations change
// its state so that a re-fetch observes them, and every call is counted by
// operation name ("ListCategories", "DeleteCategory", ...).
type FakeGateway struct {
	mu         sync.Mutex
	calls      map[string]int
	errs       map[string]error
	holds      map[string]*hold
	nextID     int64
	documents  []model.Document
	categories []model.Category
	bodies     map[int64][]byte
	stats      model.Stats

	// Auth is returned by Login and Register.
	Auth dms.AuthResult

	uploads    []model.UploadRequest
	uploaded   [][]byte
	lastFilter model.DocumentFilter
}

var _ dms.Gateway = (*FakeGateway)(nil)

type hold struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		calls:  make(map[string]int),
		errs:   make(map[string]error),
		holds:  make(map[string]*hold),
		bodies: make(map[int64][]byte),
		nextID: 100,
	}
}

// SetDocuments replaces the server's documents.
func (g *FakeGateway) SetDocuments(docs ...model.Document) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.documents = append([]model.Document(nil), docs...)
}

// SetCategories replaces the server's categories.
func (g *FakeGateway) SetCategories(cats ...model.Category) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.categories = append([]model.Category(nil), cats...)
}

// SetBody sets the content returned when document id is downloaded.
func (g *FakeGateway) SetBody(id int64, body []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bodies[id] = body
}

// SetStats sets the statistics payload.
func (g *FakeGateway) SetStats(stats model.Stats) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats = stats
}

// FailWith makes every later call of op return err. A nil err clears it.
func (g *FakeGateway) FailWith(op string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.errs, op)
		return
	}
	g.errs[op] = err
}

// FailRemote makes op fail the way the server reports errors.
func (g *FakeGateway) FailRemote(op string, status int, message string) {
	g.FailWith(op, &dms.RemoteError{Op: op, Status: status, Message: message})
}

// Hold blocks the next calls of op until release is called. started is
// closed when the first held call arrives. Held calls ignore cancellation,
// like a response already on the wire.
func (g *FakeGateway) Hold(op string) (started <-chan struct{}, release func()) {
	h := &hold{started: make(chan struct{}), release: make(chan struct{})}
	g.mu.Lock()
	g.holds[op] = h
	g.mu.Unlock()

	var once sync.Once
	return h.started, func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.holds, op)
			g.mu.Unlock()
			close(h.release)
		})
	}
}

// Calls returns how many times op was invoked.
func (g *FakeGateway) Calls(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

// TotalCalls returns the number of calls across all operations.
func (g *FakeGateway) TotalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

// Uploads returns the metadata of every accepted upload.
func (g *FakeGateway) Uploads() []model.UploadRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.UploadRequest(nil), g.uploads...)
}

// UploadedContent returns the file content of every accepted upload.
func (g *FakeGateway) UploadedContent() [][]byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([][]byte(nil), g.uploaded...)
}

// LastFilter returns the filter of the most recent ListDocuments call.
func (g *FakeGateway) LastFilter() model.DocumentFilter {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastFilter
}

// enter counts the call, waits out any hold and returns the configured error.
func (g *FakeGateway) enter(op string) error {
	g.mu.Lock()
	g.calls[op]++
	h := g.holds[op]
	g.mu.Unlock()

	if h != nil {
		h.once.Do(func() { close(h.started) })
		<-h.release
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.errs[op]
}

func (g *FakeGateway) Login(ctx context.Context, creds model.Credentials) (*dms.AuthResult, error) {
	if err := g.enter("Login"); err != nil {
		return nil, err
	}
	res := g.Auth
	return &res, nil
}

func (g *FakeGateway) Register(ctx context.Context, reg model.Registration) (*dms.AuthResult, error) {
	if err := g.enter("Register"); err != nil {
		return nil, err
	}
	res := g.Auth
	return &res, nil
}

func (g *FakeGateway) Profile(ctx context.Context, token string) (*model.User, error) {
	if err := g.enter("Profile"); err != nil {
		return nil, err
	}
	u := g.Auth.User
	return &u, nil
}

func (g *FakeGateway) ListDocuments(ctx context.Context, token string, filter model.DocumentFilter) (*model.DocumentPage, error) {
	if err := g.enter("ListDocuments"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastFilter = filter

	docs := append([]model.Document(nil), g.documents...)
	total := len(docs)
	if filter.PerPage > 0 && len(docs) > filter.PerPage {
		docs = docs[:filter.PerPage]
	}
	return &model.DocumentPage{
		Documents:  docs,
		Pagination: model.Pagination{Page: 1, PerPage: filter.PerPage, Total: total, Pages: 1},
	}, nil
}

func (g *FakeGateway) GetDocument(ctx context.Context, token string, id int64) (*model.Document, error) {
	if err := g.enter("GetDocument"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, d := range g.documents {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, &dms.RemoteError{Op: "GetDocument", Status: http.StatusNotFound, Message: "Document not found"}
}

func (g *FakeGateway) UploadDocument(ctx context.Context, token string, file io.Reader, req model.UploadRequest) (*model.Document, error) {
	if err := g.enter("UploadDocument"); err != nil {
		return nil, err
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dms.ErrTransport, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	doc := model.Document{
		ID:       g.nextID,
		Title:    req.Title,
		Filename: req.Filename,
		FileSize: int64(len(content)),
	}
	if req.Tags != "" {
		for _, tag := range strings.Split(req.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				doc.Tags = append(doc.Tags, tag)
			}
		}
	}
	g.documents = append([]model.Document{doc}, g.documents...)
	g.bodies[doc.ID] = content
	g.uploads = append(g.uploads, req)
	g.uploaded = append(g.uploaded, content)
	return &doc, nil
}

func (g *FakeGateway) DownloadDocument(ctx context.Context, token string, id int64) (io.ReadCloser, error) {
	if err := g.enter("DownloadDocument"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	body, ok := g.bodies[id]
	if !ok {
		return nil, &dms.RemoteError{Op: "DownloadDocument", Status: http.StatusNotFound, Message: "Document not found"}
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (g *FakeGateway) DeleteDocument(ctx context.Context, token string, id int64) error {
	if err := g.enter("DeleteDocument"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, d := range g.documents {
		if d.ID == id {
			g.documents = append(g.documents[:i], g.documents[i+1:]...)
			return nil
		}
	}
	return &dms.RemoteError{Op: "DeleteDocument", Status: http.StatusNotFound, Message: "Document not found"}
}

func (g *FakeGateway) FetchStats(ctx context.Context, token string) (*model.Stats, error) {
	if err := g.enter("FetchStats"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.stats
	return &s, nil
}

func (g *FakeGateway) ListCategories(ctx context.Context, token string) ([]model.Category, error) {
	if err := g.enter("ListCategories"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.Category(nil), g.categories...), nil
}

func (g *FakeGateway) CreateCategory(ctx context.Context, token string, fields model.CategoryFields) (*model.Category, error) {
	if err := g.enter("CreateCategory"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	cat := model.Category{ID: g.nextID, Name: fields.Name, Color: fields.Color}
	if fields.Description != "" {
		desc := fields.Description
		cat.Description = &desc
	}
	g.categories = append(g.categories, cat)
	return &cat, nil
}

func (g *FakeGateway) UpdateCategory(ctx context.Context, token string, id int64, fields model.CategoryFields) (*model.Category, error) {
	if err := g.enter("UpdateCategory"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.categories {
		if g.categories[i].ID == id {
			g.categories[i].Name = fields.Name
			g.categories[i].Color = fields.Color
			desc := fields.Description
			g.categories[i].Description = &desc
			cat := g.categories[i]
			return &cat, nil
		}
	}
	return nil, &dms.RemoteError{Op: "UpdateCategory", Status: http.StatusNotFound, Message: "Category not found"}
}

func (g *FakeGateway) DeleteCategory(ctx context.Context, token string, id int64) error {
	if err := g.enter("DeleteCategory"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, c := range g.categories {
		if c.ID == id {
			g.categories = append(g.categories[:i], g.categories[i+1:]...)
			return nil
		}
	}
	return &dms.RemoteError{Op: "DeleteCategory", Status: http.StatusNotFound, Message: "Category not found"}
}
