package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeBuffer_ConcurrentWrites(t *testing.T) {
	var buf SafeBuffer
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = buf.Write([]byte("x"))
		}()
	}
	wg.Wait()
	assert.Len(t, buf.String(), 8)
}

func TestWriteFiles(t *testing.T) {
	root := WriteFiles(t, map[string]string{"a/b.hcl": "content"})

	data, err := os.ReadFile(filepath.Join(root, "a", "b.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
