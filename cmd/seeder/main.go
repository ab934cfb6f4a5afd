package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/checkdex"
)

var (
	dataDir   = flag.String("dir", "./data", "directory to seed")
	overwrite = flag.Bool("overwrite", false, "replace files that already exist")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	if err := checkdex.Seed(*dataDir, *overwrite); err != nil {
		panic(err)
	}
	fmt.Printf("Seeded starter knowledge base into %s\n", *dataDir)
}
