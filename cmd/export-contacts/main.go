package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samerh/leadline/internal/db"
	"github.com/samerh/leadline/internal/export"
)

func main() {
	dbPath := flag.String("db", "leadline.db", "Path to project database file")
	outPath := flag.String("out", "", "Output CSV filename (default: timestamped)")
	flag.Parse()

	database, err := db.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	contacts, err := database.AllContacts()
	if err != nil {
		log.Fatalf("Failed to load contacts: %v", err)
	}
	if len(contacts) == 0 {
		fmt.Println("No contacts stored in", *dbPath)
		return
	}

	filename := *outPath
	if filename == "" {
		filename = fmt.Sprintf("business_contacts_%s.csv", time.Now().Format("20060102_150405"))
	}

	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, contacts); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}

	fmt.Printf("✓ Exported %d contacts to %s\n", len(contacts), filename)
}
