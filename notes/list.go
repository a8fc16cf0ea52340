package notes

import (
	"context"
	"math"
	"strings"

	"github.com/oliverisaac/notekeeper/store"
	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultLimit = 10
	MaxLimit     = 20
)

// Window is a listing request after clamping and defaulting.
type Window struct {
	Page   int
	Limit  int
	Offset int
	SortBy string
	Desc   bool
	Search string
}

func Normalize(p types.ListParams) Window {
	w := Window{Page: p.Page, Limit: p.Limit, Search: p.Search}

	if w.Page < 1 {
		w.Page = 1
	}
	if w.Limit <= 0 {
		w.Limit = DefaultLimit
	}
	w.Limit = min(w.Limit, MaxLimit)
	// pages past the addressable range read nothing instead of wrapping around
	if w.Page-1 > math.MaxInt/w.Limit {
		w.Offset = math.MaxInt
	} else {
		w.Offset = (w.Page - 1) * w.Limit
	}

	switch p.SortBy {
	case types.SortByID, types.SortByTitle, types.SortByCreatedAt:
		w.SortBy = p.SortBy
	default:
		w.SortBy = types.SortByCreatedAt
	}

	w.Desc = strings.ToUpper(p.Order) != types.OrderAsc
	return w
}

// List returns one page of the owner's notes and the number of notes matching
// the same filter across all pages.
func (s *Service) List(ctx context.Context, owner *types.User, params types.ListParams) (types.NoteList, error) {
	if owner == nil || !owner.IsSet() {
		return types.NoteList{}, errors.Wrap(types.ErrUnauthenticated, "You must be logged in to list notes")
	}

	w := Normalize(params)
	filter := store.NoteFilter{OwnerID: owner.ID, TitleSearch: w.Search}

	notes, err := s.store.QueryNotes(ctx, filter, store.NoteSort{Column: w.SortBy, Desc: w.Desc}, w.Offset, w.Limit)
	if err != nil {
		return types.NoteList{}, err
	}

	total, err := s.store.CountNotes(ctx, filter)
	if err != nil {
		return types.NoteList{}, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": owner.ID,
		"page":    w.Page,
		"limit":   w.Limit,
		"sort_by": w.SortBy,
		"desc":    w.Desc,
		"total":   total,
	}).Debug("Listed notes")

	list := types.NoteList{Items: []types.Note{}}
	list.WithNotes(notes).WithMeta(w.Page, w.Limit, total)
	return list, nil
}
