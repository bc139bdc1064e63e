package validate

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseID parses a positive int64 path segment.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
