package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

const collectionAssets = "assets"

type AssetRepository struct {
	col *mongo.Collection
}

func NewAssetRepository(db *mongo.Database) *AssetRepository {
	return &AssetRepository{col: db.Collection(collectionAssets)}
}

func (r *AssetRepository) Create(ctx context.Context, a *domain.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

func (r *AssetRepository) FindByID(ctx context.Context, id string) (*domain.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Asset
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("find asset: %w", err)
	}
	return &a, nil
}

func (r *AssetRepository) Update(ctx context.Context, a *domain.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func (r *AssetRepository) List(ctx context.Context, filter ports.ListAssetsFilter) ([]*domain.Asset, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.MovieID != "" {
		query["movie_id"] = filter.MovieID
	}
	if filter.Kind != "" {
		query["kind"] = filter.Kind
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Language != "" {
		query["language"] = filter.Language
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Asset
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode assets: %w", err)
	}
	return out, total, nil
}

// StatsByKind returns per-kind counts and total storage bytes.
func (r *AssetRepository) StatsByKind(ctx context.Context) ([]ports.AssetStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":         "$kind",
			"count":       bson.M{"$sum": 1},
			"total_bytes": bson.M{"$sum": "$size_bytes"},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("asset stats: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID         string `bson:"_id"`
		Count      int64  `bson:"count"`
		TotalBytes int64  `bson:"total_bytes"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode asset stats: %w", err)
	}

	out := make([]ports.AssetStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.AssetStats{
			Kind:       domain.AssetKind(row.ID),
			Count:      row.Count,
			TotalBytes: row.TotalBytes,
		})
	}
	return out, nil
}

// EnsureIndexes creates the indexes used by list filters.
func (r *AssetRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "movie_id", Value: 1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
