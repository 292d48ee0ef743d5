package handler

import (
	"bytes"
	"testing"
)

func TestDecodeDataURI(t *testing.T) {
	mimeType, data, err := decodeDataURI("data:image/jpeg;base64,/9j/AA==")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mimeType != "image/jpeg" {
		t.Fatalf("unexpected mime type %q", mimeType)
	}
	if !bytes.Equal(data, []byte{0xff, 0xd8, 0xff, 0x00}) {
		t.Fatalf("unexpected payload % x", data)
	}
}

func TestDecodeDataURIDefaultsMIMEType(t *testing.T) {
	mimeType, _, err := decodeDataURI("data:;base64,AQ==")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mimeType != "application/octet-stream" {
		t.Fatalf("unexpected mime type %q", mimeType)
	}
}

func TestDecodeDataURIRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"image/jpeg;base64,AQ==",      // missing scheme
		"data:image/jpeg;base64",      // missing comma
		"data:image/jpeg,AQ==",        // not base64-marked
		"data:image/jpeg;base64,@@@",  // invalid base64
		"data:image/jpeg;base64,",     // empty payload
	}
	for _, uri := range cases {
		if _, _, err := decodeDataURI(uri); err == nil {
			t.Fatalf("expected error for %q", uri)
		}
	}
}
