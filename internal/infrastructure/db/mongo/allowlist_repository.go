package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

const collectionAllowlist = "allowlist"

// AllowlistRepository persists the IP allow-list. The list is tiny and
// edited as a unit, so Replace clears and re-inserts.
type AllowlistRepository struct {
	col *mongo.Collection
}

func NewAllowlistRepository(db *mongo.Database) *AllowlistRepository {
	return &AllowlistRepository{col: db.Collection(collectionAllowlist)}
}

func (r *AllowlistRepository) Load(ctx context.Context) ([]domain.AllowlistEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("load allowlist: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.AllowlistEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode allowlist: %w", err)
	}
	return out, nil
}

func (r *AllowlistRepository) Replace(ctx context.Context, entries []domain.AllowlistEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear allowlist: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	docs := make([]any, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, e)
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert allowlist: %w", err)
	}
	return nil
}
