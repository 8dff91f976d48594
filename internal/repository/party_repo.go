package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"partyline/internal/model"
)

// PartyRepo handles MongoDB operations for parties
type PartyRepo interface {
	Create(ctx context.Context, party *model.Party) (string, error)
	GetByID(ctx context.Context, id string) (*model.Party, error)
	GetByJoinCode(ctx context.Context, code string) (*model.Party, error)
	GetByHostID(ctx context.Context, hostID string) ([]*model.Party, error)
	Update(ctx context.Context, party *model.Party) error
	Delete(ctx context.Context, id string) error
}

type partyRepo struct {
	collection *mongo.Collection
}

// NewPartyRepo creates a new party repository
func NewPartyRepo(db *mongo.Database) PartyRepo {
	return &partyRepo{
		collection: db.Collection("parties"),
	}
}

func (r *partyRepo) Create(ctx context.Context, party *model.Party) (string, error) {
	party.CreatedAt = time.Now()
	party.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, party)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *partyRepo) GetByID(ctx context.Context, id string) (*model.Party, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var party model.Party
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&party)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	party.ID = id
	return &party, nil
}

func (r *partyRepo) GetByJoinCode(ctx context.Context, code string) (*model.Party, error) {
	var party model.Party
	err := r.collection.FindOne(ctx, bson.M{"joinCode": code}).Decode(&party)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &party, nil
}

func (r *partyRepo) GetByHostID(ctx context.Context, hostID string) ([]*model.Party, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"hostId": hostID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var parties []*model.Party
	if err := cursor.All(ctx, &parties); err != nil {
		return nil, err
	}
	return parties, nil
}

func (r *partyRepo) Update(ctx context.Context, party *model.Party) error {
	oid, err := primitive.ObjectIDFromHex(party.ID)
	if err != nil {
		return err
	}

	party.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, party)
	return err
}

func (r *partyRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
