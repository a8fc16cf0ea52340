package types

const (
	SortByID        = "id"
	SortByTitle     = "title"
	SortByCreatedAt = "createdAt"

	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// ListParams are the raw listing parameters as received from the caller.
type ListParams struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
	Search string
}

type ListMeta struct {
	Page  int
	Limit int
	Total int64
}

type NoteList struct {
	Items []Note
	Meta  ListMeta
}

func (l *NoteList) WithMeta(page, limit int, total int64) *NoteList {
	l.Meta = ListMeta{Page: page, Limit: limit, Total: total}
	return l
}

func (l *NoteList) WithNotes(notes []Note) *NoteList {
	l.Items = append(l.Items, notes...)
	return l
}
