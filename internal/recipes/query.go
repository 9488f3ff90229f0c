package recipes

import (
	"strconv"
	"strings"

	"demeter/models"
)

// Page selects a window of a result list. Number is zero based.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"size"`
}

// Query narrows the recipes considered for a listing.
type Query struct {
	Method string `json:"method"`
	Value  string `json:"value"`
}

const (
	MethodDefault = "default"
	MethodName    = "name"
)

var (
	DefaultPage  = Page{Number: 0, Size: 5}
	DefaultQuery = Query{Method: MethodDefault, Value: MethodDefault}
)

// ParsePage reads page parameters, falling back to DefaultPage for any value
// that is absent or not a number.
func ParsePage(number, size string) Page {
	page := DefaultPage
	if n, err := strconv.Atoi(strings.TrimSpace(number)); err == nil {
		page.Number = n
	}
	if s, err := strconv.Atoi(strings.TrimSpace(size)); err == nil {
		page.Size = s
	}
	return page
}

// ParseQuery returns DefaultQuery unless method names a supported filter.
func ParseQuery(method, value string) Query {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case MethodName:
		return Query{Method: MethodName, Value: strings.TrimSpace(value)}
	default:
		return DefaultQuery
	}
}

func (q Query) matches(recipe models.Recipe) bool {
	if q.Method != MethodName {
		return true
	}
	return strings.Contains(strings.ToLower(recipe.Name), strings.ToLower(q.Value))
}

func paginate[T any](items []T, page Page) []T {
	if page.Size <= 0 || page.Number < 0 {
		return []T{}
	}
	start := page.Number * page.Size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+page.Size, len(items))
	return items[start:end]
}
