// Package export writes item lists in formats for use outside the tool.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/stagecrew/stageinv/internal/model"
)

var itemHeader = []string{"id", "name", "category", "crew_tag", "location", "in_use"}

// WriteItemsCSV writes a header row followed by one row per item.
func WriteItemsCSV(w io.Writer, items []model.Item) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(itemHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, it := range items {
		row := []string{
			strconv.FormatInt(it.ID, 10),
			it.Name,
			it.Category,
			it.CrewTag,
			it.Location,
			strconv.FormatBool(it.InUse),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for item %d: %w", it.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
