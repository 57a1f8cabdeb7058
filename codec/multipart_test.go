package codec

import (
	"bytes"
	"mime/multipart"
	"testing"
)

func buildMultipart(t *testing.T, fields map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%q): %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func TestMultipartExtractsFieldValue(t *testing.T) {
	mp := NewMultipart()
	body := buildMultipart(t, map[string]string{"email": "mail@example.com"})

	var found bool
	for dec := range mp.ExtractDecode(body, 0) {
		if bytes.Equal(dec, []byte("mail@example.com")) {
			found = true
		}
	}
	if !found {
		t.Fatalf("ExtractDecode did not yield the field value from:\n%s", body)
	}
}

func TestMultipartRejectsLFOnlyLineEndings(t *testing.T) {
	mp := NewMultipart()
	body := []byte("--boundary\ncontent\n--boundary--\n")

	for range mp.ExtractDecode(body, 0) {
		t.Fatal("ExtractDecode accepted a body with LF-only line endings")
	}
}

func TestMultipartRejectsMissingContentDisposition(t *testing.T) {
	mp := NewMultipart()
	body := []byte("--b\r\nContent-Type: text/plain\r\n\r\nno disposition here\r\n--b--\r\n")

	for range mp.ExtractDecode(body, 0) {
		t.Fatal("ExtractDecode yielded a part lacking Content-Disposition")
	}
}

func TestMultipartInvalidBoundaryTokenRejected(t *testing.T) {
	mp := NewMultipart()
	// A boundary token containing '@', which RFC 2046 does not allow.
	body := []byte("--bad@boundary\r\ncontent\r\n--bad@boundary--\r\n")

	for range mp.ExtractDecode(body, 0) {
		t.Fatal("ExtractDecode accepted an invalid RFC-2046 boundary token")
	}
}
