package foundation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"fundacoes/internal/domain/entity"
)

// MsgInvalidJSON is returned for unreadable or non-object request bodies.
const MsgInvalidJSON = "invalid JSON"

var errNotObject = errors.New("body is not a JSON object")

// decodePatch reads the request body as a FoundationPatch.
// A zero-length body is an empty patch. Any other body, whitespace included, must be a
// JSON object or the request is bad.
func decodePatch(r *http.Request) (entity.FoundationPatch, error) {
	var p entity.FoundationPatch

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return p, entity.NewBadRequestError(MsgInvalidJSON, err)
	}
	if len(raw) == 0 {
		return p, nil
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return p, entity.NewBadRequestError(MsgInvalidJSON, errNotObject)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, entity.NewBadRequestError(MsgInvalidJSON, err)
	}
	return p, nil
}
