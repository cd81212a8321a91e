package proc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Names())
	assert.Nil(t, r.Get("revert"))

	r.Set("separate", separate).Set("revert", revert)
	assert.Equal(t, []string{"revert", "separate"}, r.Names())

	p, ok := r.Lookup("revert")
	assert.True(t, ok)
	v, err := p.Execute("a b")
	assert.NoError(t, err)
	assert.Equal(t, "b a", v)

	r.Set("revert", separate)
	v, err = r.Get("revert").Execute("a b", "-")
	assert.NoError(t, err)
	assert.Equal(t, "a-b", v)

	r.Remove("revert").Remove("missing")
	_, ok = r.Lookup("revert")
	assert.False(t, ok)
	assert.Equal(t, []string{"separate"}, r.Names())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Set("revert", revert)
			_ = r.Get("revert")
			_ = r.Names()
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{"revert"}, r.Names())
}

func TestText(t *testing.T) {
	v, err := revert.Execute([]byte("hello world"))
	assert.NoError(t, err)
	assert.Equal(t, "world hello", v)

	v, err = revert.Execute(map[string]any{"a": 1})
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, v)
}

func TestRef(t *testing.T) {
	assert.True(t, Ref{}.IsZero())
	assert.Equal(t, "<none>", Ref{}.String())
	assert.False(t, Invalid().IsZero())
	assert.Equal(t, "<invalid>", Invalid().String())

	named := Named("revert")
	assert.False(t, named.IsZero())
	assert.Equal(t, "revert", named.Name())
	assert.Equal(t, "revert", named.String())

	direct := Use(revert)
	assert.False(t, direct.IsZero())
	assert.Empty(t, direct.Name())
	assert.Equal(t, "<procedure>", direct.String())
}
