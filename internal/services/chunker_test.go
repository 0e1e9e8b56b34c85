package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkContractSmallTextIsSingleChunk(t *testing.T) {
	chunker := NewTextChunker()

	text := "1.1 Payment is due within thirty days."
	chunks := chunker.ChunkContract(text, 8000)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkContractRespectsSizeLimit(t *testing.T) {
	chunker := NewTextChunker()

	var b strings.Builder
	for i := 1; i <= 40; i++ {
		fmt.Fprintf(&b, "1.%d Obligations\n", i)
		b.WriteString(strings.Repeat("The obligations of the parties continue in force. ", 10))
		b.WriteString("\n\n")
	}
	text := b.String()
	require.Greater(t, len(text), 2000)

	chunks := chunker.ChunkContract(text, 2000)
	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 2000, "chunk %d exceeds limit", i)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestChunkContractPrefersClauseBoundaries(t *testing.T) {
	chunker := NewTextChunker()

	clause := strings.Repeat("All notices must be delivered in writing to the registered address. ", 20)
	text := "1.1 Notices\n" + clause + "\n2.1 Fees\n" + clause + "\n3.1 Term\n" + clause

	chunks := chunker.ChunkContract(text, len(clause)+100)
	require.Greater(t, len(chunks), 1)

	// Later chunks open at clause markers rather than mid-sentence.
	assert.True(t, strings.HasPrefix(chunks[1], "2.1") || strings.HasPrefix(chunks[1], "3.1"),
		"chunk 1 starts with %q", chunks[1][:8])
}
