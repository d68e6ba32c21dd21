package attach

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"

	// Decoder registrations for the formats screenshots arrive in.
	_ "image/gif"
	_ "image/png"
)

// compressible reports whether an attachment of the given type should
// be re-encoded. GIFs are excluded: re-encoding would drop animation.
func compressible(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") && contentType != "image/gif"
}

// recodeJPEG decodes data as an image and re-encodes it as JPEG at the
// given quality.
func recodeJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
