package core

import (
	"errors"
	"io"
	"net/http"

	"github.com/segmentio/encoding/json"
)

type namePayload struct {
	Name *string `json:"name"`
}

// readName reads the whole body, bounded by limit, and returns its
// "name" field. Any failure comes back as a *BodyError.
func readName(w http.ResponseWriter, req *http.Request, limit int64) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", bodyTooLarge(err)
		}
		return "", invalidJSON(err)
	}

	var p namePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return "", invalidJSON(err)
	}
	if p.Name == nil {
		return "", invalidJSON(errors.New(`missing string field "name"`))
	}
	return *p.Name, nil
}
