package tools

import (
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseTool(t *testing.T) {
	base := NewBaseTool(mcp.NewTool("fetch_features", mcp.WithDescription("features")))

	assert.Equal(t, "fetch_features", base.Name())
	assert.Equal(t, "features", base.Handle().Description)
}

func TestWrapError(t *testing.T) {
	err := WrapError(ErrInvalidParams, errors.New("unsupported format \"pdf\""))

	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.Equal(t, "invalid parameters: unsupported format \"pdf\"", err.Error())
}

func TestNewJSONResult(t *testing.T) {
	result := NewJSONResult(map[string]any{"sequences": map[string]string{"P01308": "MALW"}})
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"sequences":{"P01308":"MALW"}}`, text.Text)
	assert.False(t, result.IsError)

	result = NewJSONResult(map[string]any{"bad": make(chan int)})
	assert.True(t, result.IsError)
}
