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

const collectionPersonnel = "personnel"

type PersonnelRepository struct {
	col *mongo.Collection
}

func NewPersonnelRepository(db *mongo.Database) *PersonnelRepository {
	return &PersonnelRepository{col: db.Collection(collectionPersonnel)}
}

func (r *PersonnelRepository) Create(ctx context.Context, p *domain.Person) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (r *PersonnelRepository) FindByID(ctx context.Context, id string) (*domain.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Person
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	return &p, nil
}

func (r *PersonnelRepository) Update(ctx context.Context, p *domain.Person) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}

func (r *PersonnelRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}

func (r *PersonnelRepository) List(ctx context.Context, filter ports.ListPersonnelFilter) ([]*domain.Person, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Kind != "" {
		query["kind"] = filter.Kind
	}
	if filter.ActiveOnly {
		query["active"] = true
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"kana": regex},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count personnel: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list personnel: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Person
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode personnel: %w", err)
	}
	return out, total, nil
}

// CountByKind returns roster counts grouped by person kind.
func (r *PersonnelRepository) CountByKind(ctx context.Context) (map[domain.PersonKind]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$kind", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count personnel by kind: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode personnel counts: %w", err)
	}

	out := make(map[domain.PersonKind]int64, len(rows))
	for _, row := range rows {
		out[domain.PersonKind(row.ID)] = row.Count
	}
	return out, nil
}
