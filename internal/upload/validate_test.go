package upload

import (
	"testing"

	"devicelab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArtifactExtensions(t *testing.T) {
	ext, appType, err := validateArtifact("app.apk", 1024, "", 0)
	require.NoError(t, err)
	assert.Equal(t, ".apk", ext)
	assert.Equal(t, models.AppTypeAPK, appType)

	// case-insensitive
	ext, appType, err = validateArtifact("BUNDLE.AAB", 1024, "", 0)
	require.NoError(t, err)
	assert.Equal(t, ".aab", ext)
	assert.Equal(t, models.AppTypeAAB, appType)

	// .txt is rejected regardless of size or MIME
	_, _, err = validateArtifact("notes.txt", 10, "application/octet-stream", 0)
	require.Error(t, err)

	_, _, err = validateArtifact("noext", 10, "", 0)
	require.Error(t, err)
}

func TestValidateArtifactSizeCap(t *testing.T) {
	// exactly at the cap is fine
	_, _, err := validateArtifact("app.apk", MaxArtifactBytes, "", 0)
	require.NoError(t, err)

	// one byte over is rejected even with a valid extension
	_, _, err = validateArtifact("app.apk", MaxArtifactBytes+1, "", 0)
	require.Error(t, err)
}

func TestValidateArtifactMIMEIsAdvisory(t *testing.T) {
	// unexpected MIME only warns, never rejects
	_, _, err := validateArtifact("app.apk", 1024, "text/plain", 0)
	require.NoError(t, err)

	// empty MIME is acceptable
	_, _, err = validateArtifact("app.apk", 1024, "", 0)
	require.NoError(t, err)

	_, _, err = validateArtifact("app.apk", 1024, "application/vnd.android.package-archive", 0)
	require.NoError(t, err)
}
