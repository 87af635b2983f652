package stylist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParser struct {
	result *ExtractResult
	err    error
	calls  int
}

func (f *fakeParser) ExtractQuery(ctx context.Context, message string) (*ExtractResult, error) {
	f.calls++
	return f.result, f.err
}

func TestExtractRequestsConjunctionSplit(t *testing.T) {
	parser := &fakeParser{}
	requests := ExtractRequests(context.Background(), "red jacket and black jeans", parser)

	require.Len(t, requests, 2)
	assert.Equal(t, ProductRequest{Query: "red jacket", Color: "red", Category: "jacket"}, requests[0])
	assert.Equal(t, ProductRequest{Query: "black jeans", Color: "black", Category: "jeans"}, requests[1])
	assert.Zero(t, parser.calls, "conjunction split should not reach the language model")
}

func TestExtractRequestsCommaSplit(t *testing.T) {
	requests := ExtractRequests(context.Background(), "white sneakers, blue dress", nil)
	// "sneakers" is not in the fragment parser's category table, so only the
	// color survives for the first fragment.
	require.Len(t, requests, 2)
	assert.Equal(t, "white", requests[0].Query)
	assert.Equal(t, "blue dress", requests[1].Query)
}

func TestExtractRequestsLanguageModelMultiItem(t *testing.T) {
	parser := &fakeParser{result: &ExtractResult{Items: []ParsedItem{
		{Brand: "Nike", Color: "white", Category: "shoes", Style: []string{"retro"}},
		{Color: "black", Category: "hoodie"},
	}}}

	requests := ExtractRequests(context.Background(), "something sporty for the weekend", parser)

	require.Len(t, requests, 2)
	assert.Equal(t, "Nike white shoes retro", requests[0].Query)
	assert.Equal(t, "Nike", requests[0].Brand)
	assert.Equal(t, "black hoodie", requests[1].Query)
	assert.Equal(t, 1, parser.calls)
}

func TestExtractRequestsParserFailureFallsBack(t *testing.T) {
	parser := &fakeParser{err: errors.New("quota exceeded")}

	requests := ExtractRequests(context.Background(), "navy blazer outfit", parser)

	require.Len(t, requests, 1)
	assert.Equal(t, "navy", requests[0].Query)
	assert.Equal(t, "navy", requests[0].Color)
}

func TestExtractRequestsLiteralLastResort(t *testing.T) {
	requests := ExtractRequests(context.Background(), "  something fun to wear tonight  ", nil)

	require.Len(t, requests, 1)
	assert.Equal(t, ProductRequest{Query: "something fun to wear tonight"}, requests[0])
}

func TestExtractRequestsLiteralTruncated(t *testing.T) {
	long := ""
	for i := 0; i < 20; i++ {
		long += "verylongword "
	}
	requests := ExtractRequests(context.Background(), long, nil)

	require.Len(t, requests, 1)
	assert.LessOrEqual(t, len(requests[0].Query), 80)
}

func TestExtractRequestsLiteralTruncationKeepsRunesIntact(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("éclair doré ", 15))
	requests := ExtractRequests(context.Background(), long, nil)

	require.Len(t, requests, 1)
	assert.True(t, utf8.ValidString(requests[0].Query))
	assert.LessOrEqual(t, utf8.RuneCountInString(requests[0].Query), 80)
}
