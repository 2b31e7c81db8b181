package groq_test

import (
	"context"
	"testing"

	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/groq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	model := &fakeModel{resp: answer("Chapitre premier")}
	e := groq.NewExtractor(model)

	out, err := e.Extract(context.Background(), &bookvox.Image{Data: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"})

	require.NoError(t, err)
	assert.Equal(t, "Chapitre premier", out)
	assert.InDelta(t, 0.2, model.opts.Temperature, 0.001)
	assert.Equal(t, groq.MaxTokens, model.opts.MaxTokens)
}

func TestExtractor_Extract_RequiresImage(t *testing.T) {
	t.Parallel()

	e := groq.NewExtractor(&fakeModel{})

	_, err := e.Extract(context.Background(), &bookvox.Image{MIMEType: "image/png"})

	assert.Equal(t, bookvox.EINVALID, bookvox.ErrorCode(err))
}

func TestBuildExtractionMessages(t *testing.T) {
	t.Parallel()

	img := &bookvox.Image{Data: []byte("abc"), MIMEType: "image/png", IsDoublePage: true}

	msgs := groq.BuildExtractionMessages(img)

	require.Len(t, msgs, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, msgs[0].Role)
	require.Len(t, msgs[0].Parts, 2)
	text, ok := msgs[0].Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, bookvox.PageBoundaryMarker)
	image, ok := msgs[0].Parts[1].(llms.ImageURLContent)
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,YWJj", image.URL)
}
