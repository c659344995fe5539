package main

import (
	"context"
	"log"
	"net/http"

	"finance-tracker-server/src/api"
	"finance-tracker-server/src/config"
	"finance-tracker-server/src/db"
)

func main() {
	cfg := config.Load()

	// Apply pending schema migrations before serving traffic
	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	db.InitCache()

	router := api.NewRouter(pool, cfg)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
