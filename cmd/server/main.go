package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ideagarden/backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
