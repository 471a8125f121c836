package token

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Length(t *testing.T) {
	for _, n := range []int{1, 7, 8, 32} {
		assert.Len(t, New(n), n)
	}
}

func TestNewPublishID_URLSafe(t *testing.T) {
	id := NewPublishID()
	assert.Len(t, id, PublishIDLength)
	assert.Equal(t, id, url.PathEscape(id), "publish id must not need escaping")
}

func TestNewPublishID_NoCollisionsInBatch(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewPublishID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %q after %d draws", id, i)
		seen[id] = struct{}{}
	}
}
