package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"talentdesk/internal/common"
)

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// actorFromRequest reads the acting recruiter's identity. Authentication is
// out of scope; the dashboard sends its user id in a header.
func actorFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Actor-Id"))
}

// idFromPath extracts the UUID segment between prefix and suffix, e.g.
// /applications/{id}/stage.
func idFromPath(path, prefix, suffix string) (common.UUID, error) {
	raw := strings.TrimPrefix(path, prefix)
	raw = strings.TrimSuffix(raw, suffix)
	raw = strings.Trim(raw, "/")
	id, err := common.ParseUUID(raw)
	if err != nil {
		return common.NilUUID, common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return id, nil
}
