package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"inkwell/app/apperr"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Helper functions shared by every controller for consistent responses

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		message = "internal server error"
	}
	sendJSON(w, status, map[string]string{"error": message})
}

// pathID extracts a numeric path variable, "id" by default
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, apperr.Invalid("invalid "+name, err)
	}
	return id, nil
}

// queryInt reads an optional numeric query parameter, 0 when absent
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("invalid JSON body", err)
	}
	return nil
}
