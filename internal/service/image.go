package service

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/nfnt/resize"
)

// maxImageWidth bounds what gets sent to the gateway; flyer photos from
// phone cameras are routinely 4000px wide.
const maxImageWidth = 1280

// PrepareImage downscales an oversized data-URI image before it is sent to
// the gateway. Inputs that are not decodable data URIs are returned
// unchanged; the pipeline performs no validation of its own and lets the
// gateway judge the payload.
func PrepareImage(imageData string) string {
	payload, ok := strings.CutPrefix(imageData, "data:")
	if !ok {
		return imageData
	}
	_, b64, ok := strings.Cut(payload, ";base64,")
	if !ok {
		return imageData
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return imageData
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return imageData
	}

	if img.Bounds().Dx() <= maxImageWidth {
		return imageData
	}

	scaled := resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 85}); err != nil {
		return imageData
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
