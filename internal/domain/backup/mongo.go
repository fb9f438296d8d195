package backup

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAdapter restores backups into the document store, translating table
// names through the fixed collection map.
type MongoAdapter struct {
	db *mongo.Database
}

func NewMongoAdapter(db *mongo.Database) *MongoAdapter {
	return &MongoAdapter{db: db}
}

// Platform identifies the document-store backend
func (a *MongoAdapter) Platform() Platform {
	return PlatformMongo
}

// Target resolves the table to its collection name; unmapped tables fall
// back to the table name itself.
func (a *MongoAdapter) Target(table string) string {
	if collection, ok := Collections[table]; ok {
		return collection
	}
	return table
}

// DeleteAll clears the collection in batches of at most BatchSize documents.
func (a *MongoAdapter) DeleteAll(ctx context.Context, table string) error {
	coll := a.db.Collection(a.Target(table))

	for {
		findOpts := options.Find().
			SetLimit(int64(BatchSize)).
			SetProjection(bson.M{"_id": 1})
		cursor, err := coll.Find(ctx, bson.M{}, findOpts)
		if err != nil {
			return fmt.Errorf("list %s documents: %w", a.Target(table), err)
		}

		var docs []bson.M
		if err := cursor.All(ctx, &docs); err != nil {
			return fmt.Errorf("decode %s documents: %w", a.Target(table), err)
		}
		if len(docs) == 0 {
			return nil
		}

		ids := make([]interface{}, 0, len(docs))
		for _, doc := range docs {
			ids = append(ids, doc["_id"])
		}
		if _, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
			return fmt.Errorf("delete %s batch: %w", a.Target(table), err)
		}
	}
}

// InsertMany writes rows as documents keyed by their original identifier,
// chunked into batches of at most BatchSize upserts.
func (a *MongoAdapter) InsertMany(ctx context.Context, table string, rows []Row) (int, error) {
	coll := a.db.Collection(a.Target(table))

	written := 0
	for start := 0; start < len(rows); start += BatchSize {
		end := start + BatchSize
		if end > len(rows) {
			end = len(rows)
		}

		models := make([]mongo.WriteModel, 0, end-start)
		for _, row := range rows[start:end] {
			doc := bson.M{}
			for k, v := range row {
				doc[k] = v
			}
			id, ok := doc["id"]
			if !ok || id == nil {
				return written, fmt.Errorf("row in %s has no identifier", table)
			}
			doc["_id"] = id

			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": id}).
				SetReplacement(doc).
				SetUpsert(true))
		}

		if _, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return written, fmt.Errorf("write %s batch: %w", a.Target(table), err)
		}
		written += len(models)
	}
	return written, nil
}
