package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samerh/leadline/internal/models"
)

// csvHeader is the stable column set expected by CRM imports. Order
// matters to downstream consumers; append, never reorder.
var csvHeader = []string{
	"name", "address", "phone", "website", "website_live",
	"rating", "total_ratings", "categories", "google_url", "place_id",
}

// WriteCSV writes one row per business to w, header first
func WriteCSV(w io.Writer, businesses []models.Business) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, b := range businesses {
		rating := ""
		if b.Rating > 0 {
			rating = strconv.FormatFloat(b.Rating, 'f', 1, 64)
		}
		row := []string{
			b.Name,
			b.Address,
			b.Phone,
			b.Website,
			b.WebsiteState.String(),
			rating,
			strconv.Itoa(b.RatingCount),
			strings.Join(b.Categories, ";"),
			b.MapURL,
			b.PlaceID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", b.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportBatchCSV writes a batch to a timestamped CSV file in the current
// directory and returns the filename
func ExportBatchCSV(batch *models.SearchBatch) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("business_contacts_%s.csv", timestamp)

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, batch.Businesses); err != nil {
		return "", err
	}
	return filename, nil
}
