package vision

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"livesolve-backend/internal/errdefs"
)

// Client extracts text from images stored in GCS via the Cloud Vision API.
type Client struct {
	annotator *vision.ImageAnnotatorClient
}

func NewClient(annotator *vision.ImageAnnotatorClient) *Client {
	return &Client{annotator: annotator}
}

// ExtractText runs TEXT_DETECTION on the image at gcsURI and returns the
// full extracted text, or "" when the call succeeds but finds none.
//
// Two failure kinds stay distinct: a per-image error reported by the API
// (corrupt/unsupported input) wraps errdefs.ErrValidation, while a failure
// of the call itself (network, auth, quota) is returned as-is. Callers use
// the distinction to pick between a 4xx and a 5xx outcome.
func (c *Client) ExtractText(ctx context.Context, gcsURI string) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{
					Source: &visionpb.ImageSource{ImageUri: gcsURI},
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := c.annotator.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("vision returned no response for %s", gcsURI)
	}

	r := resp.Responses[0]
	if r.Error != nil {
		return "", fmt.Errorf("vision could not process the image: %s: %w", r.Error.Message, errdefs.ErrValidation)
	}

	if r.FullTextAnnotation != nil {
		return r.FullTextAnnotation.Text, nil
	}
	return "", nil
}
