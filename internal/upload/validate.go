package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	"devicelab/internal/apperr"
	"devicelab/internal/logs"
	"devicelab/internal/models"
)

// MaxArtifactBytes — hard upload cap: 100 MiB.
const MaxArtifactBytes = 104857600

var appTypeByExt = map[string]string{
	".apk": models.AppTypeAPK,
	".aab": models.AppTypeAAB,
}

// MIME types the dashboard clients are known to send. Anything else is
// logged, never rejected; an empty type is acceptable as-is.
var expectedMIME = map[string]bool{
	"application/vnd.android.package-archive": true,
	"application/octet-stream":                true,
}

// validateArtifact runs every input check before any storage effect.
// Returns the normalized extension and derived app type.
func validateArtifact(filename string, size int64, declaredMIME string, maxBytes int64) (ext, appType string, err error) {
	if maxBytes <= 0 {
		maxBytes = MaxArtifactBytes
	}
	if size > maxBytes {
		return "", "", apperr.Validation(fmt.Sprintf("file exceeds maximum size of %d bytes", maxBytes))
	}
	ext = strings.ToLower(filepath.Ext(filename))
	appType, ok := appTypeByExt[ext]
	if !ok {
		return "", "", apperr.Validation("invalid file type. Only .apk and .aab files are supported")
	}
	if declaredMIME != "" && !expectedMIME[declaredMIME] {
		logs.Logger.Warnf("unexpected MIME type %q for upload %s", declaredMIME, filename)
	}
	return ext, appType, nil
}
