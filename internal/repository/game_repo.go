package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"partyline/internal/model"
)

// GameRepo handles MongoDB operations for party games
type GameRepo interface {
	Create(ctx context.Context, game *model.Game) (string, error)
	GetByID(ctx context.Context, id string) (*model.Game, error)
	GetByPartyID(ctx context.Context, partyID string) ([]*model.Game, error)
	Update(ctx context.Context, game *model.Game) error
	Delete(ctx context.Context, id string) error
}

type gameRepo struct {
	collection *mongo.Collection
}

// NewGameRepo creates a new game repository
func NewGameRepo(db *mongo.Database) GameRepo {
	return &gameRepo{
		collection: db.Collection("games"),
	}
}

func (r *gameRepo) Create(ctx context.Context, game *model.Game) (string, error) {
	game.CreatedAt = time.Now()
	game.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, game)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *gameRepo) GetByID(ctx context.Context, id string) (*model.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var game model.Game
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&game)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	game.ID = id
	return &game, nil
}

func (r *gameRepo) GetByPartyID(ctx context.Context, partyID string) ([]*model.Game, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"partyId": partyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var games []*model.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepo) Update(ctx context.Context, game *model.Game) error {
	oid, err := primitive.ObjectIDFromHex(game.ID)
	if err != nil {
		return err
	}

	game.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, game)
	return err
}

func (r *gameRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
