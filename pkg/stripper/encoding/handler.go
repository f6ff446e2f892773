package encoding

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

const (
	// sniffLen is the number of bytes used by http.DetectContentType
	sniffLen = 512
	// checkLen is a buffer size used for null byte checks.
	checkLen = 1024
	// Null byte threshold percentage to consider content binary.
	nullThreshold = 0.15
)

// utf8BOM is dropped from decoded content so it never lands inside the first array entry.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Common text-based MIME type prefixes for IsBinary.
var knownTextMIMEPrefixes = map[string]bool{
	"text/":                  true,
	"application/json":       true,
	"application/ld+json":    true,
	"application/javascript": true,
	"application/xml":        true,
}

// Handler detects the character encoding of an export file, converts it to
// UTF-8 and sniffs binary content.
type Handler interface {
	// DetectAndDecode returns the UTF-8 content, the IANA name of the detected
	// encoding, whether detection was certain, and any conversion error.
	DetectAndDecode(content []byte) (utf8Content []byte, detectedEncoding string, certainty bool, err error)

	// IsBinary reports whether content is likely binary data, based on MIME
	// sniffing of the first 512 bytes and the null byte share of the first 1024.
	IsBinary(content []byte) bool
}

// charsetHandler implements Handler using golang.org/x/net/html/charset.
type charsetHandler struct {
	defaultEncoding string
}

// NewCharsetHandler creates a Handler. defaultEncoding is an optional IANA
// name applied when detection is uncertain and the content is not valid UTF-8.
func NewCharsetHandler(defaultEncoding string) Handler {
	return &charsetHandler{defaultEncoding: defaultEncoding}
}

// IsKnownEncoding reports whether name resolves to a supported encoding.
func IsKnownEncoding(name string) bool {
	e, _ := charset.Lookup(name)
	return e != nil
}

// DetectAndDecode implements the Handler interface.
func (h *charsetHandler) DetectAndDecode(content []byte) ([]byte, string, bool, error) {
	enc, name, certain := charset.DetermineEncoding(content, "")

	// DetermineEncoding only inspects the first 1024 bytes and guesses
	// windows-1252 for pure ASCII, so check the whole input for UTF-8 first.
	if !certain && utf8.Valid(content) {
		return bytes.TrimPrefix(content, utf8BOM), "utf-8", true, nil
	}

	if !certain && h.defaultEncoding != "" {
		if e, lookupName := charset.Lookup(h.defaultEncoding); e != nil {
			enc = e
			name = lookupName
			certain = true
		}
	}

	if enc == nil {
		if name == "" {
			name = "utf-8"
		}
		return bytes.TrimPrefix(content, utf8BOM), name, certain, nil
	}

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), enc.NewDecoder()))
	if err != nil {
		if name == "" {
			name = "unknown"
		}
		return content, name, certain, fmt.Errorf("failed to convert from '%s': %w", name, err)
	}
	if name == "" {
		name = "unknown"
	}

	return bytes.TrimPrefix(decoded, utf8BOM), name, certain, nil
}

// isMIMETextBased checks if a detected MIME type is likely text-based.
func isMIMETextBased(contentType string) bool {
	mimeType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])

	if strings.HasPrefix(mimeType, "text/") || strings.HasSuffix(mimeType, "+json") {
		return true
	}
	if knownTextMIMEPrefixes[mimeType] {
		return true
	}
	// octet-stream is inconclusive; the null byte check decides.
	return mimeType == "application/octet-stream"
}

// IsBinary implements the Handler interface.
func (h *charsetHandler) IsBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	// UTF-16 exports sniff as binary because of their null bytes; a BOM settles it.
	if _, _, certain := charset.DetermineEncoding(content, ""); certain {
		return false
	}

	if !isMIMETextBased(http.DetectContentType(content[:min(len(content), sniffLen)])) {
		return true
	}

	limit := min(len(content), checkLen)
	nullCount := bytes.Count(content[:limit], []byte{0x00})
	return float64(nullCount)/float64(limit) > nullThreshold
}
