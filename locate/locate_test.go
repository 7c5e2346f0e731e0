package locate

import (
	"context"
	"testing"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_Unavailable(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	assert.False(t, b.Available())

	_, err := b.Search(context.Background(), workbuddy.SearchFilter{Pattern: "*.txt"})
	require.Error(t, err)
	assert.Equal(t, workbuddy.EUNAVAILABLE, workbuddy.ErrorCode(err))
}

func TestBackend_EmptyPattern(t *testing.T) {
	t.Parallel()

	b := &Backend{tool: "locate"}
	_, err := b.Search(context.Background(), workbuddy.SearchFilter{})
	require.Error(t, err)
	assert.Equal(t, workbuddy.EINVALID, workbuddy.ErrorCode(err))
}

func TestBackend_Args(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tool   string
		filter workbuddy.SearchFilter
		want   []string
	}{
		{"es", workbuddy.SearchFilter{Pattern: "report", Limit: 10}, []string{"report", "-n", "10"}},
		{"es", workbuddy.SearchFilter{Pattern: "report"}, []string{"report"}},
		{"mdfind", workbuddy.SearchFilter{Pattern: "report", Path: "/Users/u"}, []string{"-name", "report", "-onlyin", "/Users/u"}},
		{"plocate", workbuddy.SearchFilter{Pattern: "report", Limit: 5}, []string{"-i", "-l", "5", "report"}},
		{"locate", workbuddy.SearchFilter{Pattern: "report"}, []string{"-i", "report"}},
	}
	for _, tt := range tests {
		b := &Backend{tool: tt.tool}
		assert.Equal(t, tt.want, b.args(tt.filter), tt.tool)
	}
}
