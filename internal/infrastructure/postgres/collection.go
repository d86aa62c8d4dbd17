package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
)

const selectCols = "id, doc, created_at, updated_at"

// Collection is the generic document-collection repository: one table of
// (id, doc jsonb, created_at, updated_at) rows per entity type. Entity
// conversion is delegated to the mapper; id conversion to the codec.
// Every operation is a single storage call unless noted otherwise.
type Collection[T any] struct {
	pool   *pgxpool.Pool
	table  string
	ids    identifier.Codec
	mapper mapper.Mapper[T]
}

func NewCollection[T any](pool *pgxpool.Pool, table string, ids identifier.Codec, m mapper.Mapper[T]) *Collection[T] {
	return &Collection[T]{pool: pool, table: table, ids: ids, mapper: m}
}

// FindByID resolves id to the native key and looks the document up.
// Malformed ids are reported as ErrNotFound, never passed to the driver.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	uid, err := c.ids.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	row := c.pool.QueryRow(ctx,
		"SELECT "+selectCols+" FROM "+c.table+" WHERE id = $1", uid)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return c.mapper.ToDomain(rec), nil
}

// FindAll lists the collection in a stable order, with pagination applied
// only for the page fields that are actually set.
func (c *Collection[T]) FindAll(ctx context.Context, page *repository.Page) ([]*T, error) {
	q := "SELECT " + selectCols + " FROM " + c.table + " ORDER BY created_at, id"
	q, args := paginate(q, nil, page)
	return c.queryMany(ctx, q, args)
}

// FindBy translates the domain-shaped criteria through the mapper into a
// containment filter. An id field in the criteria targets the primary key.
func (c *Collection[T]) FindBy(ctx context.Context, criteria *T, page *repository.Page) ([]*T, error) {
	where, args := buildFilter(c.ids, c.mapper.ToPersistence(criteria))
	q := "SELECT " + selectCols + " FROM " + c.table + where + " ORDER BY created_at, id"
	q, args = paginate(q, args, page)
	return c.queryMany(ctx, q, args)
}

func (c *Collection[T]) Count(ctx context.Context, criteria *T) (int64, error) {
	var where string
	var args []any
	if criteria != nil {
		where, args = buildFilter(c.ids, c.mapper.ToPersistence(criteria))
	}
	var n int64
	err := c.pool.QueryRow(ctx, "SELECT count(*) FROM "+c.table+where, args...).Scan(&n)
	return n, err
}

// Create inserts a full document (mapper defaults applied) and returns the
// stored entity including the generated id and timestamps.
func (c *Collection[T]) Create(ctx context.Context, data *T) (*T, error) {
	doc := c.mapper.NewDocument(data)
	delete(doc, "id")
	row := c.pool.QueryRow(ctx,
		"INSERT INTO "+c.table+" (doc) VALUES ($1) RETURNING "+selectCols, doc)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return c.mapper.ToDomain(rec), nil
}

// Update merges the sparse patch into the stored document; fields absent
// from data stay untouched.
func (c *Collection[T]) Update(ctx context.Context, id string, data *T) (*T, error) {
	uid, err := c.ids.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	patch := c.mapper.ToPersistence(data)
	delete(patch, "id")
	row := c.pool.QueryRow(ctx,
		"UPDATE "+c.table+" SET doc = doc || $2, updated_at = now() WHERE id = $1 RETURNING "+selectCols,
		uid, patch)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return c.mapper.ToDomain(rec), nil
}

// Delete removes the document and returns the entity as it was stored.
func (c *Collection[T]) Delete(ctx context.Context, id string) (*T, error) {
	uid, err := c.ids.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	row := c.pool.QueryRow(ctx,
		"DELETE FROM "+c.table+" WHERE id = $1 RETURNING "+selectCols, uid)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return c.mapper.ToDomain(rec), nil
}

func (c *Collection[T]) DeleteMany(ctx context.Context, criteria *T) (int64, error) {
	where, args := buildFilter(c.ids, c.mapper.ToPersistence(criteria))
	tag, err := c.pool.Exec(ctx, "DELETE FROM "+c.table+where, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c *Collection[T]) queryMany(ctx context.Context, q string, args []any) ([]*T, error) {
	rows, err := c.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		var rec mapper.Record
		if err := rows.Scan(&rec.ID, &rec.Doc, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c.mapper.ToDomain(rec))
	}
	return out, rows.Err()
}

func scanRecord(row pgx.Row) (mapper.Record, error) {
	var rec mapper.Record
	err := row.Scan(&rec.ID, &rec.Doc, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, repository.ErrNotFound
	}
	return rec, err
}

// buildFilter turns a persistence-shaped criteria document into a WHERE
// clause. An "id" key is lifted out of the document and matched against
// the primary-key column; a malformed id can never match anything.
func buildFilter(ids identifier.Codec, doc mapper.Document) (string, []any) {
	var conds []string
	var args []any

	if raw, ok := doc["id"]; ok {
		delete(doc, "id")
		s, _ := raw.(string)
		if uid, err := ids.Parse(s); err == nil {
			args = append(args, uid)
			conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
		} else {
			conds = append(conds, "FALSE")
		}
	}
	if len(doc) > 0 {
		args = append(args, doc)
		conds = append(conds, fmt.Sprintf("doc @> $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// paginate appends LIMIT/OFFSET only for the fields that are set; zero
// means "no cap" and "no offset", not zero rows.
func paginate(q string, args []any, page *repository.Page) (string, []any) {
	if page == nil {
		return q, args
	}
	if page.Limit > 0 {
		args = append(args, page.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if page.Skip > 0 {
		args = append(args, page.Skip)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return q, args
}
