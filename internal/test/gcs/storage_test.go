package gcs_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"livesolve-backend/internal/gcs"
)

func TestObjectName_SameFilenameNeverCollides(t *testing.T) {
	first := gcs.ObjectName("user-123", "homework.jpg")
	second := gcs.ObjectName("user-123", "homework.jpg")

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "submissions/user-123/"))
	assert.True(t, strings.HasPrefix(second, "submissions/user-123/"))
	assert.True(t, strings.HasSuffix(first, ".jpg"))
	assert.True(t, strings.HasSuffix(second, ".jpg"))
}

func TestObjectName_MissingExtensionGetsGenericOne(t *testing.T) {
	name := gcs.ObjectName("user-123", "scan")
	assert.True(t, strings.HasSuffix(name, ".bin"))
}

func TestLocatorForms_Interconvertible(t *testing.T) {
	bucket := "livesolve-uploads"
	publicURL := "https://storage.googleapis.com/livesolve-uploads/submissions/u1/abc.png"
	uri := "gs://livesolve-uploads/submissions/u1/abc.png"

	assert.Equal(t, uri, gcs.PublicURLToURI(publicURL, bucket))
	assert.Equal(t, publicURL, gcs.URIToPublicURL(uri, bucket))
	assert.Equal(t, publicURL, gcs.URIToPublicURL(gcs.PublicURLToURI(publicURL, bucket), bucket))
}
