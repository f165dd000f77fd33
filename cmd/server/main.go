// Package main implements the entry point for the bookmart API server,
// a marketplace backend where sellers manage the book listings they own.
package main

import (
	"context"
	"log"
)

func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
