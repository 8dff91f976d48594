package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"partyline/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "partyline"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)

	hostID := "host_demo1234"
	now := time.Now()

	party := model.Party{
		HostID:   hostID,
		Name:     "Housewarming at the Khans",
		JoinCode: strings.ToUpper(uuid.New().String()[:6]),
		Status:   model.PartyStatusOpen,
		StartsAt: now.AddDate(0, 0, 14),
	}
	party.CreatedAt = now
	party.UpdatedAt = now

	result, err := db.Collection("parties").InsertOne(ctx, party)
	if err != nil {
		log.Fatalf("Failed to insert party: %v", err)
	}

	games := []interface{}{
		model.Game{
			PartyID:   fmt.Sprintf("%v", result.InsertedID),
			Type:      model.GameQuestionnaire,
			Title:     "About You",
			Enabled:   true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		model.Game{
			PartyID:   fmt.Sprintf("%v", result.InsertedID),
			Type:      model.GameSongRequest,
			Title:     "Build the Playlist",
			Enabled:   true,
			Moderated: true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if _, err := db.Collection("games").InsertMany(ctx, games); err != nil {
		log.Fatalf("Failed to insert games: %v", err)
	}

	fmt.Printf("Seeded party %v (join code %s) for host %s\n", result.InsertedID, party.JoinCode, hostID)
}
