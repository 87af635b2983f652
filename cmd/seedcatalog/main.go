package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/scootpie/stylist-server/config"
	"github.com/scootpie/stylist-server/models"
	"github.com/scootpie/stylist-server/utils"
)

// Loads catalog products from a JSON file into the products collection.
// Existing products are matched by external_id and updated in place, so the
// seed file can be re-run after edits.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: seedcatalog <products.json>")
		os.Exit(1)
	}

	config.LoadConfig()
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer utils.DisconnectMongo()

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	collection := utils.GetCollection(config.DatabaseName, "products")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	inserted, updated := 0, 0
	for _, p := range products {
		p.LastUpdated = time.Now()

		if p.ExternalID != "" {
			result, err := collection.ReplaceOne(ctx, bson.M{"external_id": p.ExternalID}, p)
			if err != nil {
				log.Printf("Failed to upsert %q: %v", p.Name, err)
				continue
			}
			if result.MatchedCount > 0 {
				updated++
				continue
			}
		}

		if _, err := collection.InsertOne(ctx, p); err != nil {
			log.Printf("Failed to insert %q: %v", p.Name, err)
			continue
		}
		inserted++
	}

	fmt.Printf("Seeded catalog: %d inserted, %d updated, %d total in file\n", inserted, updated, len(products))
}
