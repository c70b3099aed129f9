package main

import (
	"fmt"
	"log"
	"os"

	"regress-core/db"
	fixture_models "regress-core/db/fixtures"
)

// This script imports the predefined scenarios from the fixture into a
// persistent KeyValueStore. Its used to inspect the persistent
// KeyValueStore data in the local development environment.
func main() {
	kvStorePath := os.Getenv("KV_STORE_PATH")
	if kvStorePath == "" {
		log.Fatal("KV_STORE_PATH environment variable is not set")
	}

	kvStore, err := db.NewPersistentKeyValueStore(kvStorePath)
	if err != nil {
		log.Fatalf("Error creating KeyValueStore: %v", err)
	}

	if err := fixture_models.ImportFixtures(kvStore); err != nil {
		log.Fatalf("Failed to import fixtures: %v", err)
	}

	fmt.Printf("Imported fixture scenarios into %s\n", kvStorePath)
}
