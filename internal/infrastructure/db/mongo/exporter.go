package mongo

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionExporter streams whole collections out of the database for the
// backup service. Documents are written one per line as canonical extended
// JSON, walked with a cursor so large collections never sit in memory.
type CollectionExporter struct {
	db *mongo.Database
}

func NewCollectionExporter(db *mongo.Database) *CollectionExporter {
	return &CollectionExporter{db: db}
}

func (e *CollectionExporter) ListCollections(ctx context.Context) ([]string, error) {
	names, err := e.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

// ExportCollection writes every document of the named collection to w as
// newline-delimited JSON and returns the document count.
func (e *CollectionExporter) ExportCollection(ctx context.Context, name string, w io.Writer) (int64, error) {
	cur, err := e.db.Collection(name).Find(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("export %s: %w", name, err)
	}
	defer cur.Close(ctx)

	var count int64
	for cur.Next(ctx) {
		line, err := bson.MarshalExtJSON(cur.Current, true, false)
		if err != nil {
			return count, fmt.Errorf("export %s: marshal: %w", name, err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return count, fmt.Errorf("export %s: write: %w", name, err)
		}
		count++
	}
	if err := cur.Err(); err != nil {
		return count, fmt.Errorf("export %s: cursor: %w", name, err)
	}
	return count, nil
}
