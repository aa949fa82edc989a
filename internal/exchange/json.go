package exchange

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/scout/internal/model"
)

// jsonIndent matches the four-space layout of earlier exports.
const jsonIndent = "    "

func (x *Exchanger) encodeJSON(ctx context.Context, kind model.Kind) ([]byte, error) {
	columns := kind.Columns()
	if columns == nil {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}

	rows, err := x.store.Dump(ctx, kind, columns)
	if err != nil {
		return nil, err
	}

	objects := make([]map[string]*string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]*string, len(columns))
		for i, col := range columns {
			obj[col] = row[i]
		}
		objects = append(objects, obj)
	}

	data, err := json.MarshalIndent(objects, "", jsonIndent)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	return append(data, '\n'), nil
}
