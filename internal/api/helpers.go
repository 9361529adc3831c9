package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mrezvani/vocaflash/internal/errors"
)

var validate = validator.New()

// decodeJSON decodes the request body into dst and runs struct validation.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid request body: " + err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return errors.NewValidationError(verrs[0].Field(), "failed "+verrs[0].Tag()+" constraint")
		}
		return errors.NewBadRequestError(err.Error())
	}
	return nil
}

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func nowMilli() int64 {
	return time.Now().UnixMilli()
}

// queryInt reads an optional integer query parameter, falling back to def.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
