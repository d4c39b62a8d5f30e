package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codeSet map[string]bool

func (c codeSet) CodeTaken(_ context.Context, code string) (bool, error) {
	return c[code], nil
}

type failingChecker struct{}

func (failingChecker) CodeTaken(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func newTestGenerator(checker CodeChecker, draws ...int) *CodeGenerator {
	g := NewCodeGenerator(checker)
	g.now = func() time.Time { return time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC) }

	i := 0
	g.intN = func(int) int {
		n := draws[min(i, len(draws)-1)]
		i++

		return n
	}

	return g
}

func TestCodeGenerator_Next(t *testing.T) {
	t.Run("Format", func(t *testing.T) {
		g := newTestGenerator(codeSet{}, 42)

		code, err := g.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "TRX/2026/03/042", code)
	})

	t.Run("SkipsCodesInLedger", func(t *testing.T) {
		g := newTestGenerator(codeSet{"TRX/2026/03/042": true}, 42, 7)

		code, err := g.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "TRX/2026/03/007", code)
	})

	t.Run("NeverRepeatsIssuedCode", func(t *testing.T) {
		g := newTestGenerator(codeSet{}, 5)

		first, err := g.Next(context.Background())
		require.NoError(t, err)

		second, err := g.Next(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "TRX/2026/03/005", first)
		assert.Equal(t, "TRX/2026/03/006", second)
	})

	t.Run("ScanWrapsAround", func(t *testing.T) {
		taken := codeSet{"TRX/2026/03/999": true}
		g := newTestGenerator(taken, 999)

		code, err := g.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "TRX/2026/03/000", code)
	})

	t.Run("Exhausted", func(t *testing.T) {
		taken := codeSet{}
		g := newTestGenerator(taken, 0)

		for range codeSpace {
			_, err := g.Next(context.Background())
			require.NoError(t, err)
		}

		_, err := g.Next(context.Background())
		assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	})

	t.Run("CheckerError", func(t *testing.T) {
		g := newTestGenerator(failingChecker{}, 1)

		_, err := g.Next(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCodeSpaceExhausted)
	})
}

func TestCodeGenerator_Release(t *testing.T) {
	g := newTestGenerator(codeSet{}, 5)

	first, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TRX/2026/03/005", first)

	g.Release(first)

	again, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestCodeGenerator_DropsReservationsFromEarlierMonths(t *testing.T) {
	g := newTestGenerator(codeSet{}, 5)

	_, err := g.Next(context.Background())
	require.NoError(t, err)

	g.now = func() time.Time { return time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC) }

	code, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TRX/2026/04/005", code)
	assert.Len(t, g.issued, 1)
}
