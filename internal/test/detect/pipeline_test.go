package detect_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"livesolve-backend/internal/detect"
	"livesolve-backend/internal/models"
)

// fakeGenerator replays canned responses and records the text prompts it
// was called with.
type fakeGenerator struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, parts ...genai.Part) (string, error) {
	i := f.calls
	f.calls++
	for _, p := range parts {
		if t, ok := p.(genai.Text); ok {
			f.prompts = append(f.prompts, string(t))
		}
	}
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	return f.responses[i], nil
}

func newPipeline(gen detect.Generator) *detect.Pipeline {
	return detect.NewPipeline(gen, zap.NewNop())
}

func TestNormalizeBox_SwapsModelConvention(t *testing.T) {
	// Model emits [ymin, xmin, ymax, xmax]; the result is
	// [xmin, ymin, xmax, ymax] with the values untouched.
	got := detect.NormalizeBox([]float64{100, 200, 300, 400})
	assert.Equal(t, models.BoundingBox{200, 100, 400, 300}, got)
}

func TestNormalizeBox_ReordersInvertedCorners(t *testing.T) {
	got := detect.NormalizeBox([]float64{300, 400, 100, 200})
	assert.Equal(t, models.BoundingBox{200, 100, 400, 300}, got)
}

func TestNormalizeBox_MalformedLengthYieldsDegenerateBox(t *testing.T) {
	for _, coords := range [][]float64{nil, {}, {1, 2, 3}, {1, 2, 3, 4, 5}} {
		got := detect.NormalizeBox(coords)
		assert.Equal(t, models.BoundingBox{0, 0, 0, 0}, got)
	}
}

func TestPipeline_EmptyEnumerationSkipsSelection(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"[]"}}
	p := newPipeline(gen)

	result, err := p.DetectErrors(context.Background(), []byte("img"), "image/png")

	assert.NoError(t, err)
	assert.Equal(t, 1, gen.calls, "selection stage must not run without regions")
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, detect.SummaryPlaceholder, result.SummaryText)
}

func TestPipeline_MalformedEnumerationDegradesToEmpty(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"the model rambled instead of JSON"}}
	p := newPipeline(gen)

	result, err := p.DetectErrors(context.Background(), []byte("img"), "image/png")

	assert.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Empty(t, result.Errors)
}

func TestPipeline_SelectionDropsBoxesOutsideRegionSet(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`[{"box_2d":[100,200,300,400],"label":"2x+3=7"},{"box_2d":[500,100,600,200],"label":"x=2"}]`,
		`[{"box_2d":[100,200,300,400],"label":"sign flipped when moving the 3"},{"box_2d":[700,700,800,800],"label":"invented region"}]`,
	}}
	p := newPipeline(gen)

	result, err := p.DetectErrors(context.Background(), []byte("img"), "image/png")

	assert.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, models.BoundingBox{200, 100, 400, 300}, result.Errors[0].Box)
	assert.Equal(t, "sign flipped when moving the 3", result.Errors[0].Label)
}

func TestPipeline_SelectionPromptCarriesRegionVocabulary(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`[{"box_2d":[100,200,300,400],"label":"2x+3=7"}]`,
		`[]`,
	}}
	p := newPipeline(gen)

	result, err := p.DetectErrors(context.Background(), []byte("img"), "image/png")

	assert.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Contains(t, gen.prompts[1], `"box_2d":[100,200,300,400]`)
	assert.Contains(t, gen.prompts[1], "2x+3=7")
}

func TestPipeline_NoErrorsIsEmptyListNotFailure(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`[{"box_2d":[0,0,500,500],"label":"x=4"}]`,
		`[]`,
	}}
	p := newPipeline(gen)

	result, err := p.DetectErrors(context.Background(), []byte("img"), "image/png")

	assert.NoError(t, err)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Errors)
}

func TestPipeline_GeneratorFailurePropagates(t *testing.T) {
	gen := &fakeGenerator{responses: []string{""}, errs: []error{assert.AnError}}
	p := newPipeline(gen)

	result, err := p.DetectErrors(context.Background(), []byte("img"), "image/png")

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestPipeline_CodeFencedResponseIsUnwrapped(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		"```json\n[{\"box_2d\":[10,20,30,40],\"label\":\"7*8\"}]\n```",
		"```json\n[]\n```",
	}}
	p := newPipeline(gen)

	result, err := p.DetectErrors(context.Background(), []byte("img"), "image/png")

	assert.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
	assert.Empty(t, result.Errors)
}

func TestPipeline_ErrorCountCapped(t *testing.T) {
	var regions, selection []string
	for i := 0; i < 12; i++ {
		regions = append(regions, boxJSON(i, "step"))
		selection = append(selection, boxJSON(i, "wrong result"))
	}

	gen := &fakeGenerator{responses: []string{
		"[" + strings.Join(regions, ",") + "]",
		"[" + strings.Join(selection, ",") + "]",
	}}
	p := newPipeline(gen)

	result, err := p.DetectErrors(context.Background(), []byte("img"), "image/png")

	assert.NoError(t, err)
	assert.Len(t, result.Errors, 10)
}

func boxJSON(i int, label string) string {
	return fmt.Sprintf(`{"box_2d":[%d,0,%d,100],"label":%q}`, i*10, i*10+10, label)
}
