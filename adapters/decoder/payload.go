package decoder

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Payload is an upload split into its metadata prefix and decoded body.
type Payload struct {
	MediaType string
	Base64    bool
	Body      []byte
}

// ParsePayload splits "metadata,base64body" (e.g. "data:text/csv;base64,QSxC")
// and decodes the body.
func ParsePayload(contents string) (*Payload, error) {
	meta, body, ok := strings.Cut(contents, ",")
	if !ok {
		return nil, fmt.Errorf("payload has no metadata separator")
	}

	meta = strings.TrimPrefix(meta, "data:")
	parts := strings.Split(meta, ";")
	payload := &Payload{MediaType: strings.ToLower(strings.TrimSpace(parts[0]))}
	for _, p := range parts[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			payload.Base64 = true
		}
	}

	if !payload.Base64 {
		return nil, fmt.Errorf("payload is not base64 encoded")
	}

	decoded, err := decodeBase64(strings.TrimSpace(body))
	if err != nil {
		return nil, fmt.Errorf("payload body is not valid base64: %w", err)
	}
	payload.Body = decoded
	return payload, nil
}

func decodeBase64(s string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return decoded, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

// EncodePayload builds a data URI for body, the inverse of ParsePayload.
func EncodePayload(mediaType string, body []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(body)
}
