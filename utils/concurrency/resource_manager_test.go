package concurrency

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResourceManager(t *testing.T) {

	t.Run("NoError", func(t *testing.T) {

		acc := make([]int, 8)

		m := NewResourceManager(make([]bool, 4))

		for i := range acc {
			m.Run(func(r bool) (err error) {
				acc[i]++
				return
			})
		}

		require.NoError(t, m.Wait())

		for i := range acc {
			require.Equal(t, 1, acc[i])
		}
	})

	t.Run("WithError", func(t *testing.T) {

		m := NewResourceManager(make([]bool, 4))

		for i := 0; i < 8; i++ {
			m.Run(func(r bool) (err error) {
				if i == 2 {
					return fmt.Errorf("something bad happened")
				}
				return
			})
		}

		require.Error(t, m.Wait())
	})
}
