package orders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nova/models"
)

// Store owns order persistence. Put is a full-document upsert keyed by order
// ID: resubmitting an ID replaces the header and every line item in one
// write, never merging with what was there before.
type Store interface {
	Put(ctx context.Context, order models.Order) error
	Get(ctx context.Context, orderID string) (models.Order, error)
	List(ctx context.Context, userID string, page, pageSize int) ([]models.Order, int64, error)
}

// MongoStore persists one document per order, items embedded.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Put(ctx context.Context, order models.Order) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"orderid": order.OrderID},
		order,
		options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Get(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := s.coll.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, models.NewNotFoundError("order")
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// List returns a page of orders, newest first. An empty userID lists all.
func (s *MongoStore) List(ctx context.Context, userID string, page, pageSize int) ([]models.Order, int64, error) {
	filter := bson.M{}
	if userID != "" {
		filter["userid"] = userID
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "orderid", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
