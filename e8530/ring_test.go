package e8530

import (
	"testing"

	"github.com/matryer/is"
)

func TestRing(t *testing.T) {
	is := is.New(t)
	var r ring

	is.True(r.empty())
	_, ok := r.get()
	is.True(!ok)

	// wrap around a few times
	for n := 0; n < 3*bufSize; n++ {
		is.True(r.put(byte(n)))
		b, ok := r.get()
		is.True(ok)
		is.Equal(b, byte(n))
	}

	for i := 0; i < bufSize-1; i++ {
		is.True(r.put(byte(i)))
	}
	is.True(r.full())
	is.Equal(r.len(), bufSize-1)
	is.True(!r.put(0xff))

	for i := 0; i < bufSize-1; i++ {
		b, _ := r.get()
		is.Equal(b, byte(i))
	}
	is.True(r.empty())

	r.put(1)
	r.reset()
	is.True(r.empty())
	is.Equal(r.len(), 0)
}
