package httperrors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sir_venger/registry_lite/internal/models"
)

// Write переводит доменную ошибку в HTTP-статус: конфликты и not-found — ошибки
// клиента, сбои хранилища и staging-файлов — ошибки сервера.
func Write(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrDuplicateName):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrInvalidLocator):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrStorageFetch):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, models.ErrStagingIO):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		if containsAny(err.Error(), "is required", "is empty") {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func containsAny(msg string, needles ...string) bool {
	for _, s := range needles {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
