package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"partyline/internal/model"
)

// ProfileRepo is the response store: one record per (party, respondent).
// Upsert replaces answers and progress wholesale; callers read-modify-write
// the merged maps before calling it (last write wins).
type ProfileRepo interface {
	Get(ctx context.Context, partyID, respondentID string) (*model.Profile, error)
	Upsert(ctx context.Context, profile *model.Profile) error
	ListByParty(ctx context.Context, partyID string) ([]*model.Profile, error)
}

type profileRepo struct {
	collection *mongo.Collection
}

// NewProfileRepo creates a profile repository over mongo.
func NewProfileRepo(db *mongo.Database) ProfileRepo {
	return &profileRepo{
		collection: db.Collection("profiles"),
	}
}

func (r *profileRepo) Get(ctx context.Context, partyID, respondentID string) (*model.Profile, error) {
	filter := bson.M{"partyId": partyID, "respondentId": respondentID}

	var profile model.Profile
	err := r.collection.FindOne(ctx, filter).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepo) Upsert(ctx context.Context, profile *model.Profile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	filter := bson.M{"partyId": profile.PartyID, "respondentId": profile.RespondentID}
	update := bson.M{"$set": bson.M{
		"partyId":      profile.PartyID,
		"respondentId": profile.RespondentID,
		"displayName":  profile.DisplayName,
		"email":        profile.Email,
		"answers":      profile.Answers,
		"geo":          profile.Geo,
		"progress":     profile.Progress,
		"updatedAt":    profile.UpdatedAt,
	}, "$setOnInsert": bson.M{
		"createdAt": profile.CreatedAt,
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *profileRepo) ListByParty(ctx context.Context, partyID string) ([]*model.Profile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"partyId": partyID})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*model.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return profiles, nil
}
