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

const collectionDistributors = "distributors"

type DistributorRepository struct {
	col *mongo.Collection
}

func NewDistributorRepository(db *mongo.Database) *DistributorRepository {
	return &DistributorRepository{col: db.Collection(collectionDistributors)}
}

func (r *DistributorRepository) Create(ctx context.Context, d *domain.Distributor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert distributor: %w", err)
	}
	return nil
}

func (r *DistributorRepository) FindByID(ctx context.Context, id string) (*domain.Distributor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Distributor
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDistributorNotFound
		}
		return nil, fmt.Errorf("find distributor: %w", err)
	}
	return &d, nil
}

func (r *DistributorRepository) Update(ctx context.Context, d *domain.Distributor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return fmt.Errorf("update distributor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDistributorNotFound
	}
	return nil
}

func (r *DistributorRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete distributor: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDistributorNotFound
	}
	return nil
}

func (r *DistributorRepository) List(ctx context.Context, filter ports.ListDistributorsFilter) ([]*domain.Distributor, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"contact_name": regex},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count distributors: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list distributors: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Distributor
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode distributors: %w", err)
	}
	return out, total, nil
}

func (r *DistributorRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}
