package retriever

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextShort(t *testing.T) {
	chunks := ChunkText("Title\n\n  Some   content here.")
	assert.Equal(t, []string{"Title Some content here."}, chunks)
	assert.Empty(t, ChunkText("   "))
}

func TestChunkTextLong(t *testing.T) {
	sentence := "This sentence is exactly fifty characters long ok. "
	text := strings.Repeat(sentence, 40)

	chunks := ChunkText(text)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), chunkSize)
	}
	// Breaks land on sentence ends when one is late enough in the chunk.
	assert.True(t, strings.HasSuffix(chunks[0], "ok."), chunks[0])
	// Consecutive chunks overlap.
	tailOfFirst := chunks[0][len(chunks[0])-40:]
	assert.Contains(t, chunks[1], tailOfFirst)
}

func TestChunkTextWithoutSentences(t *testing.T) {
	text := strings.Repeat("x", 2000)
	chunks := ChunkText(text)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 800)
	assert.Len(t, chunks[1], 800)
	assert.Len(t, chunks[2], 2000-1400)
}

func TestLocalRetrieverSearch(t *testing.T) {
	r := NewLocalRetriever(demoPages())
	require.Greater(t, r.Len(), 0)

	docs, err := r.Search(context.Background(), "What is the price of the blue hoodie?", 5)
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	assert.Equal(t, "Classic Hoodie", docs[0].Title)
	require.NotNil(t, docs[0].ProductInfo)
	for i := 1; i < len(docs); i++ {
		assert.GreaterOrEqual(t, docs[i-1].Score, docs[i].Score)
	}

	docs, err = r.Search(context.Background(), "refunds", 5)
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	assert.Equal(t, "Returns and Refunds", docs[0].Title)
	assert.Nil(t, docs[0].ProductInfo)
}

func TestLocalRetrieverNoTerms(t *testing.T) {
	r := NewLocalRetriever(demoPages())
	docs, err := r.Search(context.Background(), "what is the", 5)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLocalRetrieverCancelled(t *testing.T) {
	r := NewLocalRetriever(demoPages())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Search(ctx, "hoodie", 5)
	assert.ErrorIs(t, err, ErrRetrieval)
}

func TestLoadLocalRetriever(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraped.json")
	data := `[{"url":"https://x/faq","title":"FAQ","content":"We ship worldwide.","page_type":"faq","product_info":{}}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	r, err := LoadLocalRetriever(path)
	require.NoError(t, err)
	docs, err := r.Search(context.Background(), "ship worldwide", 5)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 1.0, docs[0].Score)
	assert.Nil(t, docs[0].ProductInfo)

	_, err = LoadLocalRetriever(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNewRetrieverModes(t *testing.T) {
	r, err := New(Options{Mode: ModeMock})
	require.NoError(t, err)
	assert.IsType(t, &MockRetriever{}, r)

	r, err = New(Options{Mode: ModeSubprocess, Command: "python3", Args: []string{"search.py"}})
	require.NoError(t, err)
	assert.IsType(t, &SubprocessRetriever{}, r)

	_, err = New(Options{Mode: ModeSubprocess})
	assert.Error(t, err)

	_, err = New(Options{Mode: "faiss"})
	assert.Error(t, err)
}
