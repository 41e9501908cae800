package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/aistomin/andys-backend/internal/domain"
)

// Table implements the CRUD statements shared by tables keyed by a
// BIGSERIAL "id" column. R is the scany row struct.
type Table[R any] struct {
	Name    string
	Entity  string
	Columns []string
}

func (t Table[R]) returning() string {
	return "RETURNING " + strings.Join(t.Columns, ", ")
}

// List returns every row ordered by id.
func (t Table[R]) List(ctx context.Context, q Querier) ([]R, error) {
	var rows []R
	query := Builder.Select(t.Columns...).From(t.Name).OrderBy("id")
	if err := Select(ctx, q, &rows, query); err != nil {
		return nil, MapError(err, t.Entity, "list")
	}
	return rows, nil
}

// Get returns the row with the given id.
func (t Table[R]) Get(ctx context.Context, q Querier, id int64) (R, error) {
	var row R
	query := Builder.Select(t.Columns...).From(t.Name).Where(sq.Eq{"id": id})
	if err := Get(ctx, q, &row, query); err != nil {
		return row, MapError(err, t.Entity, id)
	}
	return row, nil
}

// Insert adds a row and returns it as stored.
func (t Table[R]) Insert(ctx context.Context, q Querier, values map[string]any) (R, error) {
	var row R
	query := Builder.Insert(t.Name).SetMap(values).Suffix(t.returning())
	if err := Get(ctx, q, &row, query); err != nil {
		return row, MapError(err, t.Entity, "new")
	}
	return row, nil
}

// Update overwrites the row with the given id and returns it.
func (t Table[R]) Update(ctx context.Context, q Querier, id int64, values map[string]any) (R, error) {
	var row R
	query := Builder.Update(t.Name).SetMap(values).Where(sq.Eq{"id": id}).Suffix(t.returning())
	if err := Get(ctx, q, &row, query); err != nil {
		return row, MapError(err, t.Entity, id)
	}
	return row, nil
}

// Save inserts when id is zero. Otherwise it updates the row and, when no
// row has that id, inserts a new one under a freshly generated id.
func (t Table[R]) Save(ctx context.Context, q Querier, id int64, values map[string]any) (R, error) {
	if id == 0 {
		return t.Insert(ctx, q, values)
	}
	row, err := t.Update(ctx, q, id, values)
	if errors.Is(err, domain.ErrNotFound) {
		return t.Insert(ctx, q, values)
	}
	return row, err
}

// Delete removes the row with the given id. A missing row is ErrNotFound.
func (t Table[R]) Delete(ctx context.Context, q Querier, id int64) error {
	tag, err := Exec(ctx, q, Builder.Delete(t.Name).Where(sq.Eq{"id": id}))
	if err != nil {
		return MapError(err, t.Entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", t.Entity, id, domain.ErrNotFound)
	}
	return nil
}
