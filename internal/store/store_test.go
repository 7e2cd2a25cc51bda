package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argand-io/argand/internal/cplx"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "points.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndLookup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	v := cplx.Value{Re: 5.2, Im: 6.05}
	require.NoError(t, s.Insert(ctx, "p1", v))

	got, err := s.Lookup(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestRangeScanUsesMagnitudeOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Inserted out of magnitude order on purpose.
	points := map[string]cplx.Value{
		"big":    {Re: 56.0, Im: -22.5},  // mag ~60.35
		"mid":    {Re: -43.2, Im: -0.07}, // mag ~43.2
		"small":  {Re: 1, Im: 2},         // mag ~2.24
		"unit":   {Re: 0, Im: 1},         // mag 1
		"origin": {Re: 0, Im: 0},         // mag 0
	}
	for label, v := range points {
		require.NoError(t, s.Insert(ctx, label, v))
	}

	got, err := s.RangeScan(ctx, cplx.Value{Re: 1, Im: 0}, cplx.Value{Re: 50, Im: 0})
	require.NoError(t, err)

	labels := make([]string, len(got))
	for i, p := range got {
		labels[i] = p.Label
	}
	// Magnitudes 1, ~2.24, ~43.2 fall inside [1, 50]; 0 and ~60.35 do not.
	assert.Equal(t, []string{"unit", "small", "mid"}, labels)
}

func TestRangeScanBoundsAreMagnitudeClasses(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// (3,4) and (5,0) are one equivalence class under the collation. A
	// range bounded by (5,0) must include (3,4): that is exactly the
	// behavior a phase tie-break would silently change.
	require.NoError(t, s.Insert(ctx, "phase", cplx.Value{Re: 3, Im: 4}))
	require.NoError(t, s.Insert(ctx, "axis", cplx.Value{Re: 5, Im: 0}))
	require.NoError(t, s.Insert(ctx, "outside", cplx.Value{Re: 6, Im: 0}))

	got, err := s.RangeScan(ctx, cplx.Value{Re: 5, Im: 0}, cplx.Value{Re: 5, Im: 0})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "axis", got[0].Label)
	assert.Equal(t, "phase", got[1].Label)
}

func TestSumAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for label, v := range map[string]cplx.Value{
		"a": {Re: 1, Im: 2},
		"b": {Re: 3, Im: 4},
		"c": {Re: 5, Im: 6},
	} {
		require.NoError(t, s.Insert(ctx, label, v))
	}

	sum, err := s.SumAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, cplx.Value{Re: 9, Im: 12}, sum)
}

func TestRegisteredSQLFunctions(t *testing.T) {
	s := openTestStore(t)

	var added string
	require.NoError(t, s.DB().QueryRow(
		`SELECT complex_add('(1,2.5)', '(4.2,3.55)')`).Scan(&added))
	assert.Equal(t, "(5.2,6.05)", added)

	var mag float64
	require.NoError(t, s.DB().QueryRow(
		`SELECT complex_abs('(3,4)')`).Scan(&mag))
	assert.Equal(t, 5.0, mag)

	var cmp int
	require.NoError(t, s.DB().QueryRow(
		`SELECT complex_cmp('(56,-22.5)', '(-43.2,-0.07)')`).Scan(&cmp))
	assert.Equal(t, 1, cmp)
}

func TestSQLFunctionRejectsMalformedText(t *testing.T) {
	s := openTestStore(t)
	var out string
	err := s.DB().QueryRow(`SELECT complex_add('bogus', '(1,2)')`).Scan(&out)
	require.Error(t, err)
}

func TestCollationAgreesWithComparator(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	values := []cplx.Value{
		{Re: 0, Im: 0}, {Re: 3, Im: 4}, {Re: 5, Im: 0},
		{Re: -1, Im: 0}, {Re: 56, Im: -22.5}, {Re: -43.2, Im: -0.07},
	}
	for i, v := range values {
		require.NoError(t, s.Insert(ctx, string(rune('a'+i)), v))
	}

	// Full scan ordered by the collation must come back non-decreasing
	// under the Go comparator.
	got, err := s.RangeScan(ctx, cplx.Value{Re: 0, Im: 0}, cplx.Value{Re: 100, Im: 0})
	require.NoError(t, err)
	require.Len(t, got, len(values))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, cplx.Compare(got[i-1].Value, got[i].Value), 0,
			"row %d out of order: %s after %s", i,
			cplx.Format(got[i].Value), cplx.Format(got[i-1].Value))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Insert(context.Background(), "p", cplx.Value{Re: 1, Im: 1}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Lookup(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, cplx.Value{Re: 1, Im: 1}, got)
}
