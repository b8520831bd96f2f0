package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "comment ID", humanizeParam("commentId"))
	assert.Equal(t, "post ID", humanizeParam("postId"))
	assert.Equal(t, "cursor", humanizeParam("cursor"))
}

func TestSplitCamel(t *testing.T) {
	assert.Equal(t, []string{"comment"}, splitCamel("comment"))
	assert.Equal(t, []string{"post", "Image"}, splitCamel("postImage"))
}
