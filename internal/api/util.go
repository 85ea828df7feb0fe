package api

import (
	"encoding/json"
	"strconv"
	"strings"
)

// parseLimit reads an optional ?limit=N. Anything unparsable becomes 0,
// which the service layer treats as the default.
func parseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// modelKeys are the untagged gorm.Model fields embedded in battle and cast
// records.
var modelKeys = map[string]string{
	"ID":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
	"DeletedAt": "deleted_at",
}

// snakeModelKeys renames modelKeys in place at every depth, so a battle's
// nested casts come out the same as the battle itself.
func snakeModelKeys(v interface{}) {
	switch vv := v.(type) {
	case map[string]interface{}:
		for from, to := range modelKeys {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		for _, val := range vv {
			snakeModelKeys(val)
		}
	case []interface{}:
		for _, val := range vv {
			snakeModelKeys(val)
		}
	}
}

// recordJSON encodes stored records for a response with snake_case model
// keys.
func recordJSON(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	snakeModelKeys(out)
	return out, nil
}
