package writer

import (
	"fmt"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EncodeJSON renders data rows as an array of objects keyed by header, keeping column order
func EncodeJSON(rows [][]string) ([]byte, error) {
	if len(rows) == 0 {
		return []byte("[]"), nil
	}

	header := rows[0]
	objects := make([]*orderedmap.OrderedMap[string, string], 0, len(rows)-1)
	for _, row := range rows[1:] {
		obj := orderedmap.New[string, string](len(header))
		for i, h := range header {
			obj.Set(h, row[i])
		}
		objects = append(objects, obj)
	}

	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode records to JSON: %w", err)
	}
	return data, nil
}
