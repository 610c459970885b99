package resthttp

import (
	"encoding/json"
	"net/http"

	"github.com/sir_venger/registry_lite/internal/models"
	"github.com/sir_venger/registry_lite/pkg/httperrors"
)

// postArtifactReq — тело запроса на регистрацию артефакта.
type postArtifactReq struct {
	Name       string         `json:"name"`
	Owner      string         `json:"owner"`
	Project    string         `json:"project"`
	StorageURI string         `json:"storage_uri"`
	Metadata   map[string]any `json:"metadata"`
}

// postArtifactResp — тело ответа с присвоенным идентификатором.
type postArtifactResp struct {
	ArtifactID string `json:"artifact_id"`
}

// postArtifact принимает метаданные артефакта и делегирует регистрацию реестру.
func (s *Server) postArtifact(w http.ResponseWriter, r *http.Request) {
	var payload postArtifactReq
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := s.Registry.Register(r.Context(), models.ArtifactRecord{
		Name:       payload.Name,
		Owner:      payload.Owner,
		Project:    payload.Project,
		StorageURI: payload.StorageURI,
		Metadata:   payload.Metadata,
	})
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(postArtifactResp{ArtifactID: id})
}
