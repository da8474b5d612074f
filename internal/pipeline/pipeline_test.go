package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idocr/idocr/internal/common"
	"github.com/idocr/idocr/internal/decode"
	"github.com/idocr/idocr/internal/llm"
	"github.com/idocr/idocr/internal/ocr"
)

type fakeEngine struct {
	obs []ocr.Observation
	err error
}

func (f *fakeEngine) Recognize(context.Context, image.Image) ([]ocr.Observation, error) {
	return f.obs, f.err
}

type fakeClient struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	img.SetRGBA(5, 5, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestPipeline(engine ocr.Engine, client llm.CompletionClient) *Pipeline {
	return New(nil, decode.NewDecoder(decode.Config{}, nil), engine, client, llm.NewParser(nil))
}

func TestExtractImageHappyPath(t *testing.T) {
	engine := &fakeEngine{obs: []ocr.Observation{
		{Text: "Name: Asha Rao"},
		{Text: "DOB: 01-01-1990"},
	}}
	client := &fakeClient{reply: `Here is the result: {"name":"Asha Rao","dob":"01-01-1990",` +
		`"phone":null,"document_number":null,"address":null,"type":"Other","language":null,"gender":null} Thanks.`}

	res, err := newTestPipeline(engine, client).ExtractImage(context.Background(), pngBytes(t))

	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.ExecutionTime, 0.0)
	require.NotNil(t, res.Fields.Name)
	assert.Equal(t, "Asha Rao", *res.Fields.Name)
	require.NotNil(t, res.Fields.DocumentType)
	assert.Equal(t, "Other", *res.Fields.DocumentType)
	assert.Nil(t, res.Fields.Phone)

	// Aggregated tokens reach the prompt in observation order.
	assert.Contains(t, client.lastPrompt, `["Name: Asha Rao","DOB: 01-01-1990"]`)
}

func TestExtractImageDecodeFailure(t *testing.T) {
	p := newTestPipeline(&fakeEngine{}, &fakeClient{})

	_, err := p.ExtractImage(context.Background(), []byte("not an image"))

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDecode)
}

func TestExtractImageOCRFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("tesseract crashed")}

	_, err := newTestPipeline(engine, &fakeClient{}).ExtractImage(context.Background(), pngBytes(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrOCR)
	assert.Contains(t, err.Error(), "tesseract crashed")
}

func TestExtractImageNoTextIsNotAnError(t *testing.T) {
	// An empty observation list is a valid "no text found" outcome; the
	// pipeline continues to the LLM with an empty document body.
	engine := &fakeEngine{obs: nil}
	client := &fakeClient{reply: `{"name":null,"dob":null,"phone":null,"document_number":null,` +
		`"address":null,"type":null,"language":null,"gender":null}`}

	res, err := newTestPipeline(engine, client).ExtractImage(context.Background(), pngBytes(t))

	require.NoError(t, err)
	assert.Nil(t, res.Fields.Name)
	assert.True(t, strings.Contains(client.lastPrompt, "[]"))
}

func TestExtractImageLLMFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("completion status 503")}

	_, err := newTestPipeline(&fakeEngine{}, client).ExtractImage(context.Background(), pngBytes(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrLLM)
}

func TestExtractImageParseFailure(t *testing.T) {
	client := &fakeClient{reply: "I could not find any fields, sorry."}

	_, err := newTestPipeline(&fakeEngine{}, client).ExtractImage(context.Background(), pngBytes(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrParse)
}
