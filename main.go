package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"regress-core/db"
	fixture_models "regress-core/db/fixtures"
	"regress-core/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	var kvStore *db.KeyValueStore
	var err error
	if kvStorePath := os.Getenv("KV_STORE_PATH"); kvStorePath != "" {
		kvStore, err = db.NewPersistentKeyValueStore(kvStorePath)
		if err != nil {
			log.Fatalf("Error creating persistent KeyValueStore: %v", err)
		}
	} else {
		kvStore = db.NewKeyValueStore()
	}

	if err := fixture_models.ImportFixtures(kvStore); err != nil {
		log.Fatalf("Failed to import fixture scenarios: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	_, wg, port := server.RunServer(kvStore, port)
	log.Printf("regress-core listening on port %s", port)
	wg.Wait()
}
