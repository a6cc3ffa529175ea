package service

import (
	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// Page is one page of a list query
type Page[T any] struct {
	Items      []T
	Total      int
	Pagination model.Pagination
}

func (p Page[T]) TotalPages() int {
	return p.Pagination.TotalPages(p.Total)
}

func newPage[T any](items []T, total int, page model.Pagination) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Pagination: page}
}

// normalizePage fills defaults and caps the limit instead of rejecting it
func normalizePage(page model.Pagination, defLimit int) model.Pagination {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = defLimit
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}
	return page
}

// unexpected passes domain errors through and wraps everything else
func unexpected(message string, err error) error {
	if _, ok := domain.AsError(err); ok {
		return err
	}
	return domain.NewUnexpected(message, err)
}

// notFoundOr maps a storage miss to a NotFound error with message
func notFoundOr(err error, message, op string) error {
	if domain.IsNotFound(err) {
		return domain.NewNotFound(message)
	}
	return unexpected(op, err)
}

func normalizeOrder(order string) (string, bool) {
	switch order {
	case "", "DESC", "desc":
		return "DESC", true
	case "ASC", "asc":
		return "ASC", true
	default:
		return "", false
	}
}
