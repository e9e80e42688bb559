package dms

// User-facing texts.
const (
	MsgGenericError = "An error occurred"

	MsgPasswordMismatch = "Passwords do not match"

	MsgUploadSuccess = "Document uploaded successfully!"
	MsgUploadError   = "Error uploading document"
	MsgNoFile        = "Select a file to upload"
	MsgBadCategory   = "Invalid category"
	MsgDownloadError = "Error downloading document"

	MsgDocumentDeleted     = "Document deleted successfully!"
	MsgDocumentDeleteError = "Error deleting document"

	MsgCategoryCreated     = "Category created successfully!"
	MsgCategoryCreateError = "Error creating category"
	MsgCategoryUpdated     = "Category updated successfully!"
	MsgCategoryUpdateError = "Error updating category"
	MsgCategoryDeleted     = "Category deleted successfully!"
	MsgCategoryDeleteError = "Error deleting category"
	MsgCategoryNotEmpty    = "Category contains documents and cannot be deleted"

	MsgLoadStatsError      = "Could not load statistics"
	MsgLoadDocumentsError  = "Could not load documents"
	MsgLoadCategoriesError = "Could not load categories"
)
