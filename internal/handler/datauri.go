package handler

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// decodeDataURI splits a "data:<mime>;base64,<payload>" URI into its MIME
// type and decoded bytes.
func decodeDataURI(uri string) (string, []byte, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("handler: not a data URI")
	}
	rest := uri[len("data:"):]
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return "", nil, fmt.Errorf("handler: malformed data URI")
	}
	meta := rest[:comma]
	payload := rest[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("handler: data URI is not base64-encoded")
	}
	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("handler: decode data URI: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("handler: empty data URI payload")
	}
	return mimeType, data, nil
}
