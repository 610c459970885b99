package resthttp

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sir_venger/registry_lite/pkg/httperrors"
)

// headerRequesterID — необязательный заголовок с меткой запросившего. Значение
// никак не проверяется и используется только для атрибуции в журнале.
const headerRequesterID = "X-Requester-Id"

// downloadArtifact выдаёт байты артефакта и закрывает staging-файл по завершении
// передачи, независимо от того, дочитал клиент поток или оборвал соединение.
func (s *Server) downloadArtifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	dl, err := s.Tracker.Fetch(r.Context(), name, extractRequester(r))
	if err != nil {
		httperrors.Write(w, err)
		return
	}
	defer dl.Close()

	w.Header().Set("Content-Length", strconv.FormatInt(dl.Size(), 10))
	w.Header().Set("Content-Type", "application/octet-stream")

	if _, err := io.Copy(w, dl); err != nil {
		// Заголовки уже ушли — остаётся только залогировать обрыв.
		s.Logger.Warn("download stream interrupted", "artifact", name, "error", err)
	}
}

// extractRequester пытается вытащить метку запросившего из заголовка или query-параметра.
func extractRequester(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(headerRequesterID)); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.URL.Query().Get("requester")); v != "" {
		return v
	}
	return ""
}
