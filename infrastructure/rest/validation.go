package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"toni/errors"
	"toni/images"

	"github.com/go-playground/validator/v10"
)

const (
	invalidImageMessage = "Invalid image format. Expected base64 string."
	invalidBodyMessage  = "Invalid JSON body"
	bodyTooLargeMessage = "Request body too large"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("b64image", func(fl validator.FieldLevel) bool {
		return images.Valid(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// tagMessages maps a failed validation tag to the client-facing message.
type tagMessages map[string]string

// rejectInvalid answers 400 with the message of the first failing rule.
func rejectInvalid(w http.ResponseWriter, err error, messages tagMessages) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Tag()]; ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

// decodeBody reads a JSON object into dst. An empty body decodes to the zero
// value so that the missing-field rules report it.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, bodyTooLargeMessage)
		return false
	}
	writeError(w, http.StatusBadRequest, invalidBodyMessage)
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeFailure is the 500 shape: a fixed summary plus the cause.
func writeFailure(w http.ResponseWriter, summary string, err error) {
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: summary, Message: err.Error()})
}
