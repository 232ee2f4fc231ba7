// Package mongo stores tasks as documents of the todos collection,
// keeping the field layout of the existing collection (_id, text,
// completed, userId).
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/adanyl0v/notebook-todo/internal/models"
	"github.com/adanyl0v/notebook-todo/internal/services"
)

const collectionName = "todos"

type taskDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	UserID    string             `bson:"userId"`
}

func (d *taskDocument) toModel() *models.Task {
	return &models.Task{
		ID:        d.ID.Hex(),
		OwnerID:   d.UserID,
		Text:      d.Text,
		Completed: d.Completed,
	}
}

type Repository struct {
	client *mongo.Client
	tasks  *mongo.Collection
}

func Connect(ctx context.Context, uri, database string, connectTimeout time.Duration) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	tasks := client.Database(database).Collection(collectionName)
	_, err = tasks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create userId index: %w", err)
	}

	return &Repository{
		client: client,
		tasks:  tasks,
	}, nil
}

func (r *Repository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	doc := taskDocument{
		ID:        primitive.NewObjectID(),
		Text:      task.Text,
		Completed: task.Completed,
		UserID:    task.OwnerID,
	}

	_, err := r.tasks.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	return doc.toModel(), nil
}

func (r *Repository) FindByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	cursor, err := r.tasks.Find(ctx, bson.D{{Key: "userId", Value: ownerID}})
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}

	var docs []taskDocument
	err = cursor.All(ctx, &docs)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]*models.Task, len(docs))
	for i := range docs {
		tasks[i] = docs[i].toModel()
	}
	return tasks, nil
}

func (r *Repository) UpdateCompleted(ctx context.Context, id, ownerID string, completed bool) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, services.ErrTaskNotFound
	}

	filter := bson.D{
		{Key: "_id", Value: objectID},
		{Key: "userId", Value: ownerID},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "completed", Value: completed}}},
	}

	var doc taskDocument
	err = r.tasks.FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return doc.toModel(), nil
}

func (r *Repository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.tasks.DeleteOne(ctx, bson.D{
		{Key: "_id", Value: objectID},
		{Key: "userId", Value: ownerID},
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
