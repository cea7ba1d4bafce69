package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Error codes carried alongside the human-readable message.
const (
	ErrInvalidBody     = "invalid_body"
	ErrInvalidURL      = "invalid_url"
	ErrCaptionNotFound = "caption_not_found"
	ErrFetchFailed     = "fetch_failed"
	ErrInternal        = "internal_error"
	ErrUnauthorized    = "unauthorized"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// WriteErrorWithCode writes a JSON error response with a machine-readable code.
func WriteErrorWithCode(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// WriteAttachment writes body as a file download.
func WriteAttachment(w http.ResponseWriter, mediaType, filename string, body []byte) {
	w.Header().Set("Content-Type", mediaType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", ContentDisposition(filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// ContentDisposition builds an attachment header with a quoted ASCII
// filename and, for non-ASCII names, an RFC 5987 filename* parameter.
func ContentDisposition(filename string) string {
	var ascii strings.Builder
	needsExt := false
	for _, r := range filename {
		switch {
		case r == '"' || r == '\\':
			ascii.WriteByte('_')
		case r < 0x20 || r == 0x7f:
		case r > 0x7e:
			ascii.WriteByte('_')
			needsExt = true
		default:
			ascii.WriteRune(r)
		}
	}
	h := fmt.Sprintf(`attachment; filename="%s"`, ascii.String())
	if needsExt {
		h += "; filename*=UTF-8''" + url.PathEscape(filename)
	}
	return h
}

// DecodeJSON reads and decodes a JSON request body into v.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF {
		return fmt.Errorf("missing request body")
	}
	return err
}
