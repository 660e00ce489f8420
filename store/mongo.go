package store

import (
	"context"
	"errors"

	"clicafe-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const database = "ecommerce"

// MongoCartStore implements CartStore over the "carts" collection, with a
// per-row product lookup against "products".
type MongoCartStore struct {
	carts    *mongo.Collection
	products *mongo.Collection
}

// NewMongoCartStore creates a CartStore backed by the given client.
func NewMongoCartStore(client *mongo.Client) *MongoCartStore {
	db := client.Database(database)
	return &MongoCartStore{
		carts:    db.Collection("carts"),
		products: db.Collection("products"),
	}
}

func (s *MongoCartStore) RowsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartRow, error) {
	cursor, err := s.carts.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.CartRow
	for cursor.Next(ctx) {
		var item models.CartItem
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}

		row := models.CartRow{CartItem: item}
		var product models.Product
		err := s.products.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		switch {
		case err == nil:
			row.Product = &product
		case errors.Is(err, mongo.ErrNoDocuments):
			// Dangling reference, surfaced as a nil product.
		default:
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, cursor.Err()
}

func (s *MongoCartStore) AddRow(ctx context.Context, item models.CartItem) error {
	filter := bson.M{"user_id": item.UserID, "product_id": item.ProductID}
	update := bson.M{"$inc": bson.M{"quantity": item.Quantity}}
	_, err := s.carts.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (s *MongoCartStore) DeleteRow(ctx context.Context, rowID primitive.ObjectID) error {
	_, err := s.carts.DeleteOne(ctx, bson.M{"_id": rowID})
	return err
}

func (s *MongoCartStore) DeleteByProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	result, err := s.carts.DeleteOne(ctx, bson.M{"user_id": userID, "product_id": productID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoOrderStore implements OrderStore over the "orders" collection.
type MongoOrderStore struct {
	orders *mongo.Collection
}

// NewMongoOrderStore creates an OrderStore backed by the given client.
func NewMongoOrderStore(client *mongo.Client) *MongoOrderStore {
	return &MongoOrderStore{orders: client.Database(database).Collection("orders")}
}

func (s *MongoOrderStore) Create(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	result, err := s.orders.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (s *MongoOrderStore) ForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	cursor, err := s.orders.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, cursor.Err()
}

func (s *MongoOrderStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) UpdateEstado(ctx context.Context, id primitive.ObjectID, estado string) error {
	result, err := s.orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"estado": estado}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoUserStore implements UserStore over the "users" collection.
type MongoUserStore struct {
	users *mongo.Collection
}

// NewMongoUserStore creates a UserStore backed by the given client.
func NewMongoUserStore(client *mongo.Client) *MongoUserStore {
	return &MongoUserStore{users: client.Database(database).Collection("users")}
}

func (s *MongoUserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
