package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

const collectionPreferences = "layout_preferences"

// PreferencesRepository is the durable store for dashboard layouts. One
// document per user, keyed by user_id, always written as a whole.
type PreferencesRepository struct {
	col *mongo.Collection
}

func NewPreferencesRepository(db *mongo.Database) *PreferencesRepository {
	return &PreferencesRepository{col: db.Collection(collectionPreferences)}
}

// Load retrieves the stored preferences for a user. A missing document maps
// to domain.ErrPreferencesNotFound so callers can tell "fresh user" apart
// from a transport failure.
func (r *PreferencesRepository) Load(ctx context.Context, userID string) (*domain.LayoutPreferences, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var prefs domain.LayoutPreferences
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prefs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return &prefs, nil
}

// Save upserts the whole record.
func (r *PreferencesRepository) Save(ctx context.Context, prefs *domain.LayoutPreferences) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"user_id": prefs.UserID},
		prefs,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique user_id index.
func (r *PreferencesRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
