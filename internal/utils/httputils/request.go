package httputils

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/wgomg/kwextract/internal/utils"
)

// MaxBodyBytes bounds the size of a request body accepted by DecodeJSON.
const MaxBodyBytes = 8 << 20

func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return &HTTPError{
			Code:    http.StatusUnsupportedMediaType,
			Message: "Content-Type must be application/json",
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &HTTPError{
				Code:    http.StatusRequestEntityTooLarge,
				Message: "Request body too large",
			}
		}
		return &HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid JSON payload: " + err.Error(),
		}
	}
	return nil
}

// LogRequestBody logs the raw body at debug level when raw body logging is
// enabled and rewinds it so it can be decoded afterwards. At most
// MaxBodyBytes are buffered.
func LogRequestBody(r *http.Request, logger *utils.Logger) error {
	if !logger.RawBodyLog {
		return nil
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return err
	}
	if len(bodyBytes) > MaxBodyBytes {
		return &HTTPError{
			Code:    http.StatusRequestEntityTooLarge,
			Message: "Request body too large",
		}
	}

	r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	logger.Debug("Raw request body: %s", utils.Truncate(string(bodyBytes), 4096))

	return nil
}
