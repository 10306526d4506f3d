package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
	"github.com/unclebandit/campaign-scheduler/internal/logx"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.L().Warnw("response_encode_failed", "err", err)
	}
}

// writeError answers rejections with their reason code and everything else
// with a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if rej, ok := apperrors.AsRejection(err); ok {
		writeJSON(w, rej.HTTPStatus(), errorBody{Error: string(rej.Reason), Message: rej.Message})
		return
	}
	logx.FromContext(r.Context()).Errorw("request_failed",
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "InternalError", Message: "Internal server error"})
}

// decodeBody reads a JSON object into dst. Anything else is InvalidInput.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("Request body is required")
		}
		return apperrors.InvalidInput("Request body must be a JSON object of string fields")
	}
	return nil
}
