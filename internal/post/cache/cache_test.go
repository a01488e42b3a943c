package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harsach/newsportal/internal/post/model"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "feed:::1:20", Key(model.Filter{}, 1, 20))
	assert.Equal(t, "feed:job:government:2:10",
		Key(model.Filter{Type: model.TypeJob, SubCategory: "government"}, 2, 10))

	// distinct pages never collide
	assert.NotEqual(t, Key(model.Filter{}, 1, 20), Key(model.Filter{}, 2, 20))
}
