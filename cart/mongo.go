package cart

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nova/models"
)

// MongoStore persists one document per cart, keyed by cart ID.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Get(ctx context.Context, cartID string) (models.Cart, error) {
	var cart models.Cart
	err := s.coll.FindOne(ctx, bson.M{"cartid": cartID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return models.Cart{CartID: cartID, Lines: []models.CartLine{}}, nil
	}
	if err != nil {
		return models.Cart{}, err
	}
	if cart.Lines == nil {
		cart.Lines = []models.CartLine{}
	}
	return cart, nil
}

func (s *MongoStore) AddLine(ctx context.Context, cartID string, line models.CartLine) (models.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Lines = mergeLine(cart.Lines, line)
	return s.save(ctx, cart)
}

func (s *MongoStore) UpdateQuantity(ctx context.Context, cartID, productID string, qty int) (models.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Lines = setQuantity(cart.Lines, productID, qty)
	return s.save(ctx, cart)
}

func (s *MongoStore) RemoveLine(ctx context.Context, cartID, productID string) (models.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Lines = removeLine(cart.Lines, productID)
	return s.save(ctx, cart)
}

func (s *MongoStore) Clear(ctx context.Context, cartID string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"cartid": cartID})
	return err
}

func (s *MongoStore) save(ctx context.Context, cart models.Cart) (models.Cart, error) {
	cart.UpdatedAt = time.Now()
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"cartid": cart.CartID},
		cart,
		options.Replace().SetUpsert(true))
	if err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}
