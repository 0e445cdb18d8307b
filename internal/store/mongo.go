package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/warehousekit/warehouse-api/internal/model"
)

// MongoStore is the durable backing over a products collection. Every call
// runs under opTimeout so an unreachable server surfaces as a StorageError
// instead of hanging the request.
type MongoStore struct {
	coll      *mongo.Collection
	opTimeout time.Duration
}

// NewMongoStore wraps an already-connected collection handle. The handle is
// owned by the caller; the store never re-initializes the connection.
func NewMongoStore(coll *mongo.Collection, opTimeout time.Duration) *MongoStore {
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	return &MongoStore{coll: coll, opTimeout: opTimeout}
}

func (s *MongoStore) Source() string { return SourceDurable }

func (s *MongoStore) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *MongoStore) Create(ctx context.Context, np model.NewProduct) (model.Product, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	now := time.Now().UTC()
	p := model.Product{
		ID:          primitive.NewObjectID().Hex(),
		Name:        np.Name,
		Quantity:    np.Quantity,
		Category:    np.Category,
		Price:       np.Price,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return model.Product{}, &StorageError{Op: "create", Err: err}
	}
	return p, nil
}

func (s *MongoStore) List(ctx context.Context) ([]model.Product, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	var out []model.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return out, nil
}

func (s *MongoStore) Reduce(ctx context.Context, id string, amount int64) (model.Product, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	// Conditional update: the sufficiency check and the decrement are one
	// server-side operation, so concurrent reduces on the same id cannot
	// both pass the check.
	filter := bson.M{"_id": id, "quantity": bson.M{"$gte": amount}}
	update := bson.M{
		"$inc": bson.M{"quantity": -amount},
		"$set": bson.M{"lastUpdated": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Product
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, &StorageError{Op: "reduce", Err: err}
	}
	// The conditional update missed: either the id is unknown or the stock
	// is insufficient. Look the record up to tell the two apart.
	var current model.Product
	err = s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&current)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, ErrNotFound
	}
	if err != nil {
		return model.Product{}, &StorageError{Op: "reduce", Err: err}
	}
	return model.Product{}, &InsufficientStockError{Available: current.Quantity}
}

func (s *MongoStore) Delete(ctx context.Context, id string) (model.Product, int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	var deleted model.Product
	err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, 0, ErrNotFound
	}
	if err != nil {
		return model.Product{}, 0, &StorageError{Op: "delete", Err: err}
	}
	remaining, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return model.Product{}, 0, &StorageError{Op: "delete", Err: err}
	}
	return deleted, remaining, nil
}

func (s *MongoStore) Search(ctx context.Context, query string) ([]model.Product, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"category": re},
	}}
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, &StorageError{Op: "search", Err: err}
	}
	var out []model.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, &StorageError{Op: "search", Err: err}
	}
	return out, nil
}

func (s *MongoStore) Stats(ctx context.Context, lowStockThreshold int64) (model.Stats, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	st := model.Stats{Categories: []model.CategoryCount{}}

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return model.Stats{}, &StorageError{Op: "stats", Err: err}
	}
	st.TotalProducts = total

	valuePipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$multiply": bson.A{"$quantity", "$price"}}},
		}}},
	}
	cur, err := s.coll.Aggregate(ctx, valuePipe)
	if err != nil {
		return model.Stats{}, &StorageError{Op: "stats", Err: err}
	}
	var totals []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &totals); err != nil {
		return model.Stats{}, &StorageError{Op: "stats", Err: err}
	}
	if len(totals) > 0 {
		st.TotalValue = totals[0].Total
	}

	catPipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cur, err = s.coll.Aggregate(ctx, catPipe)
	if err != nil {
		return model.Stats{}, &StorageError{Op: "stats", Err: err}
	}
	if err := cur.All(ctx, &st.Categories); err != nil {
		return model.Stats{}, &StorageError{Op: "stats", Err: err}
	}

	low, err := s.coll.CountDocuments(ctx, bson.M{"quantity": bson.M{"$lt": lowStockThreshold}})
	if err != nil {
		return model.Stats{}, &StorageError{Op: "stats", Err: err}
	}
	st.LowStock = low
	return st, nil
}
