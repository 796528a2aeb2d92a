package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/mediafeed/internal/model"
)

func TestToggledLike(t *testing.T) {
	tests := []struct {
		name     string
		in       model.FeedItem
		expected model.FeedItem
	}{
		{
			name:     "unliked becomes liked",
			in:       model.FeedItem{ID: 1, LikeCount: 120},
			expected: model.FeedItem{ID: 1, LikeCount: 121, IsLiked: true},
		},
		{
			name:     "liked becomes unliked",
			in:       model.FeedItem{ID: 2, LikeCount: 121, IsLiked: true},
			expected: model.FeedItem{ID: 2, LikeCount: 120},
		},
		{
			name:     "liked with zero count stays at zero",
			in:       model.FeedItem{ID: 3, IsLiked: true},
			expected: model.FeedItem{ID: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.ToggledLike())
		})
	}
}

func TestToggledLikeLeavesOriginalAlone(t *testing.T) {
	orig := model.FeedItem{ID: 7, Title: "t", LikeCount: 50}
	got := orig.ToggledLike().ToggledLike()

	assert.Equal(t, orig, got)
	assert.False(t, orig.IsLiked)
	assert.Equal(t, 50, orig.LikeCount)
}
