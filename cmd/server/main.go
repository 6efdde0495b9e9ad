// Command server runs the linkmark HTTP API.
//
// Configuration comes from environment variables (and optionally a config
// file, see internal/config). Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"

	"github.com/heartmarshall/linkmark-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
