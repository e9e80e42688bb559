package model

// Role is the access level the server assigns to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the cached profile returned by login, registration and the profile endpoint.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	CreatedAt      Timestamp `json:"created_at"`
	DocumentsCount int       `json:"documents_count"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session pairs the bearer token with the cached user profile.
type Session struct {
	Token string
	User  User
}

// Credentials is the login request body. Username may also hold an email address.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CategoryRef is the embedded category summary carried by a Document.
type CategoryRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Document is a read view of a server-owned document record.
type Document struct {
	ID                int64        `json:"id"`
	Title             string       `json:"title"`
	Filename          string       `json:"filename"`
	FileType          string       `json:"file_type"`
	FileSize          int64        `json:"file_size"`
	FileSizeFormatted string       `json:"file_size_formatted"`
	UploadDate        Timestamp    `json:"upload_date"`
	Description       *string      `json:"description"`
	Category          *CategoryRef `json:"category"`
	Tags              []string     `json:"tags"`
	Owner             string       `json:"owner"`
}

// Category is a read view of a server-owned category record.
type Category struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	Color          string    `json:"color"`
	DocumentsCount int       `json:"documents_count"`
	CreatedAt      Timestamp `json:"created_at"`
}

// Deletable reports whether the category may be deleted. The server rejects
// deletion of categories that still hold documents.
func (c Category) Deletable() bool {
	return c.DocumentsCount == 0
}

// CategoryFields is the create/update request body.
type CategoryFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Stats are the aggregate numbers shown on the dashboard.
type Stats struct {
	TotalDocuments     int    `json:"total_documents"`
	TotalSize          int64  `json:"total_size"`
	TotalSizeFormatted string `json:"total_size_formatted"`
	TotalUsers         int    `json:"total_users"`
	TotalCategories    int    `json:"total_categories"`
}

// Pagination describes the page of documents returned by the list endpoint.
type Pagination struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// DocumentPage is one page of the document list.
type DocumentPage struct {
	Documents  []Document `json:"documents"`
	Pagination Pagination `json:"pagination"`
}

// DocumentFilter narrows the server-side document listing. Zero values are omitted.
type DocumentFilter struct {
	Page       int
	PerPage    int
	Search     string
	CategoryID int64
}

// UploadRequest carries the metadata sent alongside an uploaded file.
// CategoryID of zero and an empty Tags string are omitted from the payload.
type UploadRequest struct {
	Filename    string
	Title       string
	Description string
	CategoryID  int64
	Tags        string
}
