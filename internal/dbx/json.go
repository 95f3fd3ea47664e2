package dbx

import "encoding/json"

// MarshalJSONB encodes v as text suitable for a jsonb parameter.
func MarshalJSONB(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalJSONB decodes a scanned jsonb column into v. Empty input is a no-op.
func UnmarshalJSONB(b []byte, v any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}
