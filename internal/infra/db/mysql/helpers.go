package mysql

import "encoding/json"

// MySQL has no native string-array type; topics and keywords live in JSON
// columns as arrays of strings.

func encodeStrings(vals []string) (string, error) {
	if vals == nil {
		vals = []string{}
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStrings(raw []byte) ([]string, error) {
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// jsonString quotes a scalar so it can be matched against a JSON array with
// JSON_CONTAINS (element-level exact match, mirroring $1 = ANY(col) on
// Postgres).
func jsonString(v string) string {
	b, _ := json.Marshal(v)
	return string(b)
}
