package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type errorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func writeJSON(log logrus.FieldLogger, w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if code == http.StatusNoContent {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithField("error", err).Error("failed to write response")
	}
}

func renderError(log logrus.FieldLogger, w http.ResponseWriter, msg string, code int) {
	if code >= http.StatusInternalServerError {
		log.WithField("error", msg).Error("request error")
	} else {
		log.WithField("error", msg).Warn("request error")
	}
	writeJSON(log, w, code, errorResponse{Message: msg, Status: code})
}

// renderStoreError maps persistence failures to client responses.
// Constraint violations translated by GORM become client errors; anything
// else is a 500.
func renderStoreError(log logrus.FieldLogger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		renderError(log, w, "not found", http.StatusNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		renderError(log, w, "already registered", http.StatusConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		renderError(log, w, "user does not exist", http.StatusBadRequest)
	default:
		renderError(log, w, err.Error(), http.StatusInternalServerError)
	}
}
