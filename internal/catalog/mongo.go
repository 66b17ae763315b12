package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quickcart/internal/models"
)

// MongoCatalog serves products from the "products" Mongo collection.
// Deletes are soft: documents are flagged isDeleted and filtered out of
// every read, so order history can still resolve past product ids.
type MongoCatalog struct {
	collection *mongo.Collection
}

func NewMongoCatalog(db *mongo.Database) *MongoCatalog {
	return &MongoCatalog{collection: db.Collection("products")}
}

func notDeleted() bson.M {
	return bson.M{"isDeleted": bson.M{"$ne": true}}
}

func (c *MongoCatalog) GetAll(ctx context.Context) ([]models.Product, error) {
	return c.find(ctx, notDeleted())
}

func (c *MongoCatalog) GetByID(ctx context.Context, id string) (models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return models.Product{}, ProductNotFoundError{ID: id}
	}

	filter := notDeleted()
	filter["_id"] = objectID

	var product models.Product
	err = c.collection.FindOne(ctx, filter).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ProductNotFoundError{ID: id}
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}

	product.InStock = product.Stock > 0
	return product, nil
}

func (c *MongoCatalog) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	filter := notDeleted()
	filter["category"] = category
	return c.find(ctx, filter)
}

// Categories lists the distinct category names across active products.
func (c *MongoCatalog) Categories(ctx context.Context) ([]string, error) {
	values, err := c.collection.Distinct(ctx, "category", notDeleted())
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, value := range values {
		if name, ok := value.(string); ok && name != "" {
			categories = append(categories, name)
		}
	}
	return categories, nil
}

func (c *MongoCatalog) Create(ctx context.Context, input CreateInput) (models.Product, error) {
	product := models.Product{
		Name:           strings.TrimSpace(input.Name),
		Price:          input.Price,
		Category:       strings.TrimSpace(input.Category),
		Description:    input.Description,
		ImageURL:       input.ImageURL,
		Stock:          input.Stock,
		Specifications: input.Specifications,
		CreatedAt:      time.Now(),
	}

	if product.Name == "" {
		return models.Product{}, errors.New("name is required")
	}
	if product.Price <= 0 {
		return models.Product{}, errors.New("price must be greater than 0")
	}

	res, err := c.collection.InsertOne(ctx, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}

	product.InStock = product.Stock > 0
	return product, nil
}

func (c *MongoCatalog) Update(ctx context.Context, id string, input UpdateInput) (models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return models.Product{}, ProductNotFoundError{ID: id}
	}

	set := bson.M{}
	if input.Name != nil {
		set["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return models.Product{}, errors.New("price must be greater than 0")
		}
		set["price"] = *input.Price
	}
	if input.Category != nil {
		set["category"] = strings.TrimSpace(*input.Category)
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.ImageURL != nil {
		set["imageUrl"] = *input.ImageURL
	}
	if input.Stock != nil {
		set["stock"] = *input.Stock
	}
	if input.Specifications != nil {
		set["specifications"] = *input.Specifications
	}
	if len(set) == 0 {
		return c.GetByID(ctx, id)
	}

	filter := notDeleted()
	filter["_id"] = objectID

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err = c.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ProductNotFoundError{ID: id}
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}

	product.InStock = product.Stock > 0
	return product, nil
}

func (c *MongoCatalog) Delete(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return false, nil
	}

	now := time.Now()
	filter := notDeleted()
	filter["_id"] = objectID

	res, err := c.collection.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"isDeleted": true, "deletedAt": now},
	})
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (c *MongoCatalog) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := c.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		product.InStock = product.Stock > 0
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
