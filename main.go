package main

import (
	"log"

	"recipe-server/confs"
	"recipe-server/db"
	"recipe-server/server"
)

func main() {
	// load config
	err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// connect to database Postgres (waits until it accepts connections)
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// run server
	srv := server.NewServer(database)
	srv.Start()
}
