package postid

import (
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

var benchmark = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)

func fixedAt(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func newTestGenerator(now time.Time) *Generator {
	return New(benchmark, fixedAt(now), WithLocation(time.UTC))
}

func TestPostID(t *testing.T) {
	g := newTestGenerator(benchmark.Add(3600*time.Second + 500*time.Millisecond))

	id, err := g.PostID("u1", 7)
	require.NoError(t, err)
	assert.Equal(t, "u12s007", id)
	assert.Len(t, id, len("u1")+TimeCompressWidth(3600)+2)

	id, err = g.PostID("u1", 99)
	require.NoError(t, err)
	assert.Equal(t, "u12s099", id)
}

func TestPostIDInvalidArgument(t *testing.T) {
	g := newTestGenerator(benchmark.Add(time.Hour))

	tests := []struct {
		name    string
		userTag string
		seq     int
	}{
		{"seq zero", "u1", 0},
		{"seq too large", "u1", 100},
		{"negative seq", "u1", -1},
		{"empty user tag", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := g.PostID(tt.userTag, tt.seq)
			assert.Empty(t, id)
			assert.True(t, errors.IsCode(err, code.ErrInvalidArgument), "got %v", err)
		})
	}
}

func TestPostIDClockBehindBenchmark(t *testing.T) {
	g := newTestGenerator(benchmark.Add(-time.Second))

	_, err := g.PostID("u1", 1)
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "clock is behind benchmark")
}

func TestPostIDWidthBoundary(t *testing.T) {
	last := benchmark.Add(time.Duration(MaxFixedWidthElapsed) * time.Second)
	first := last.Add(time.Second)

	before, err := newTestGenerator(last).PostID("u1", 99)
	require.NoError(t, err)
	after, err := newTestGenerator(first).PostID("u1", 1)
	require.NoError(t, err)

	assert.Equal(t, "u1zzzzz99", before)
	assert.Equal(t, "u110000001", after)
	assert.Equal(t, 5, TimeCompressWidth(MaxFixedWidthElapsed))
	assert.Equal(t, 6, TimeCompressWidth(MaxFixedWidthElapsed+1))
	// 跨越位数边界后字典序与时间序相反.
	assert.True(t, before > after)
}

func TestPostIDMonotonicWithinWidth(t *testing.T) {
	var prev string
	start := benchmark.Add(36 * 36 * time.Second)
	for i := 0; i < 2000; i++ {
		now := start.Add(time.Duration(i) * time.Second)
		g := newTestGenerator(now)
		for _, seq := range []int{1, 2, 50, 99} {
			id, err := g.PostID("user", seq)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, id, prev)
			prev = id
		}
	}
}

func TestPostIDConcurrent(t *testing.T) {
	g := newTestGenerator(benchmark.Add(time.Minute))

	var wg sync.WaitGroup
	ids := make([]string, MaxSeq)
	for seq := MinSeq; seq <= MaxSeq; seq++ {
		wg.Add(1)
		go func(seq int) {
			defer wg.Done()
			id, err := g.PostID("u1", seq)
			assert.NoError(t, err)
			ids[seq-1] = id
		}(seq)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestPostWeekID(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"benchmark monday", benchmark, "u10"},
		{"sunday before midnight", time.Date(2018, 1, 7, 23, 59, 59, 0, time.UTC), "u10"},
		{"second week", time.Date(2018, 1, 10, 12, 0, 0, 0, time.UTC), "u1604800"},
		{"second week monday", time.Date(2018, 1, 8, 0, 0, 0, 0, time.UTC), "u1604800"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := newTestGenerator(tt.now).PostWeekID("u1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestPostWeekIDStableAndAdvancesByWeek(t *testing.T) {
	weekOf := func(now time.Time) int64 {
		id, err := newTestGenerator(now).PostWeekID("tag")
		require.NoError(t, err)
		n, err := strconv.ParseInt(strings.TrimPrefix(id, "tag"), 10, 64)
		require.NoError(t, err)
		return n
	}

	wed := time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC)
	sun := time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC)
	nextMon := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, weekOf(wed), weekOf(sun))
	assert.Equal(t, WeekSeconds, weekOf(nextMon)-weekOf(wed))
}

func TestPostWeekIDBeforeBenchmarkWeekStart(t *testing.T) {
	wednesday := time.Date(2018, 1, 3, 0, 0, 0, 0, time.UTC)
	g := New(wednesday, fixedAt(time.Date(2018, 1, 4, 0, 0, 0, 0, time.UTC)), WithLocation(time.UTC))

	id, err := g.PostWeekID("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1-172800", id)
}

func TestPostWeekIDEmptyUserTag(t *testing.T) {
	_, err := newTestGenerator(benchmark).PostWeekID("")
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))
}

func TestWeekStartUsesLocation(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	g := New(benchmark, WithLocation(shanghai))

	// 周日 20:00 UTC 在东八区已经是周一 04:00.
	sundayUTC := time.Date(2024, 1, 7, 20, 0, 0, 0, time.UTC)
	start := g.WeekStart(sundayUTC)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, shanghai), start)
}

func TestParseRoundTrip(t *testing.T) {
	now := benchmark.Add(987654*time.Second + 321*time.Millisecond)
	g := newTestGenerator(now)

	id, err := g.PostID("user42", 5)
	require.NoError(t, err)

	parsed, err := g.Parse(id, len("user42"))
	require.NoError(t, err)
	assert.Equal(t, "user42", parsed.UserTag)
	assert.Equal(t, 5, parsed.Seq)
	assert.Equal(t, int64(987654), parsed.ElapsedSeconds)
	assert.WithinDuration(t, now, parsed.Time, time.Second)
}

func TestParseInvalid(t *testing.T) {
	g := newTestGenerator(benchmark)

	for _, id := range []string{"u1", "u1a", "u1a00", "u1A01", "u1a+1", ""} {
		_, err := g.Parse(id, 2)
		assert.True(t, errors.IsCode(err, code.ErrDecodingFailed), "id %q: %v", id, err)
	}
}

func TestRangeBounds(t *testing.T) {
	g := newTestGenerator(benchmark)

	lo, hi, err := g.RangeBounds("u1", benchmark.Add(36*time.Second), benchmark.Add(71*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "u11001", lo)
	assert.Equal(t, "u11z99", hi)

	_, _, err = g.RangeBounds("u1", benchmark.Add(time.Hour), benchmark)
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))

	_, _, err = g.RangeBounds("u1",
		benchmark.Add(time.Duration(MaxFixedWidthElapsed)*time.Second),
		benchmark.Add(time.Duration(MaxFixedWidthElapsed+1)*time.Second))
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))
}

func TestPackageLevelFunctions(t *testing.T) {
	epoch := time.Now().Add(-10 * time.Second).UnixMilli()

	id, err := PostID("u", epoch, 3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "u"))
	assert.True(t, strings.HasSuffix(id, "03"))

	parsed, err := NewFromMillis(epoch).Parse(id, 1)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed.Time, 2*time.Second)

	_, err = PostID("u", epoch, 100)
	assert.Error(t, err)

	week, err := PostWeekID("u", epoch)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(week, "u"))
}

func TestBase36(t *testing.T) {
	cases := map[int64]string{0: "0", 35: "z", 36: "10", 3600: "2s0", MaxFixedWidthElapsed: "zzzzz", MaxFixedWidthElapsed + 1: "100000"}
	for n, s := range cases {
		assert.Equal(t, s, EncodeBase36(n))
		got, err := DecodeBase36(s)
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}

	for _, bad := range []string{"", "Z", "1-2", "zzzzzzzzzzzzzzzz"} {
		_, err := DecodeBase36(bad)
		assert.True(t, errors.IsCode(err, code.ErrDecodingFailed), "input %q", bad)
	}
}
