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

const collectionGuidelines = "guidelines"

type GuidelineRepository struct {
	col *mongo.Collection
}

func NewGuidelineRepository(db *mongo.Database) *GuidelineRepository {
	return &GuidelineRepository{col: db.Collection(collectionGuidelines)}
}

func (r *GuidelineRepository) Create(ctx context.Context, g *domain.Guideline) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, g); err != nil {
		return fmt.Errorf("insert guideline: %w", err)
	}
	return nil
}

func (r *GuidelineRepository) FindByID(ctx context.Context, id string) (*domain.Guideline, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var g domain.Guideline
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGuidelineNotFound
		}
		return nil, fmt.Errorf("find guideline: %w", err)
	}
	return &g, nil
}

func (r *GuidelineRepository) Update(ctx context.Context, g *domain.Guideline) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
	if err != nil {
		return fmt.Errorf("update guideline: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrGuidelineNotFound
	}
	return nil
}

func (r *GuidelineRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete guideline: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGuidelineNotFound
	}
	return nil
}

func (r *GuidelineRepository) List(ctx context.Context, filter ports.ListGuidelinesFilter) ([]*domain.Guideline, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		query["title"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count guidelines: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list guidelines: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Guideline
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode guidelines: %w", err)
	}
	return out, total, nil
}

func (r *GuidelineRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}
