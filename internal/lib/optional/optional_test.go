package optional

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSome(t *testing.T) {
	o := Some([]string{"legs"})

	v, ok := o.Get()
	assert.True(t, ok)
	assert.True(t, o.IsPresent())
	assert.Equal(t, []string{"legs"}, v)
}

func TestNoneAndZeroValue(t *testing.T) {
	for _, o := range []Optional[int]{None[int](), {}} {
		v, ok := o.Get()
		assert.False(t, ok)
		assert.False(t, o.IsPresent())
		assert.Zero(t, v)
		assert.Equal(t, 7, o.OrElse(7))
	}
}

func TestSomeOfEmptyIsPresent(t *testing.T) {
	assert.True(t, Some([]int{}).IsPresent())
}
