package dms

import (
	"strconv"
	"strings"

	"dms-go/internal/model"
)

// FilterDocuments returns the documents matching searchTerm and
// selectedCategory. A document matches the search term when the term is empty
// or is a case-insensitive substring of its title, filename or any tag. It
// matches the category when selectedCategory is empty or equals the decimal id
// of the document's category.
func FilterDocuments(docs []model.Document, searchTerm, selectedCategory string) []model.Document {
	term := strings.ToLower(searchTerm)
	result := make([]model.Document, 0, len(docs))
	for _, doc := range docs {
		if matchesSearch(doc, term) && matchesCategory(doc, selectedCategory) {
			result = append(result, doc)
		}
	}
	return result
}

func matchesSearch(doc model.Document, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Title), term) ||
		strings.Contains(strings.ToLower(doc.Filename), term) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func matchesCategory(doc model.Document, selected string) bool {
	if selected == "" {
		return true
	}
	if doc.Category == nil {
		return false
	}
	return strconv.FormatInt(doc.Category.ID, 10) == selected
}
