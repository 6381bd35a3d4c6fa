package data

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cinestats/internal/biz"
	"cinestats/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moviesCSV = `movie_id,title,release_date,vote_average,vote_count,budget,revenue,return
1,Moonlight and Valentino,1995-03-17,5.5,12,10000000,2500000,0.25
2,Toy Story,1995-10-30,7.7,5415.0,30000000,373554033,
3,"Heat, Again",not-a-date,7.7,abc,0,100,
1,Duplicate Id,2001-01-01,1.0,1,1,1,1
`

const castCSV = `movie_id,name,character
1,Paul Rodriguez,Rudy
2,Tom Hanks,Woody
2,Tom Hanks,Woody (voice)
`

const crewCSV = `movie_id,name,job
2,John Lasseter,Director
2,Joss Whedon,Screenplay
`

func writeDataset(t *testing.T) *conf.Data_Source {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"movies.csv": moviesCSV,
		"cast.csv":   castCSV,
		"crew.csv":   crewCSV,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return &conf.Data_Source{
		Kind:   "csv",
		Movies: filepath.Join(dir, "movies.csv"),
		Cast:   filepath.Join(dir, "cast.csv"),
		Crew:   filepath.Join(dir, "crew.csv"),
	}
}

// ---------------------------------------------------------------------------
// Normalization
// ---------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "1995-03-17", want: "1995-03-17"},
		{in: "1995-03-17 00:00:00", want: "1995-03-17"},
		{in: "1995-03-17T10:00:00", want: "1995-03-17"},
		{in: "1995-03-17T10:00:00Z", want: "1995-03-17"},
		{in: "1995/03/17", want: "1995-03-17"},
		{in: " 1995-03-17 ", want: "1995-03-17"},
		{in: "", want: ""},
		{in: "NaT", want: ""},
		{in: "nan", want: ""},
		{in: "17 March", want: ""},
		{in: "1995-13-40", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got := parseDate(tt.in)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestParseNumbers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(12), parseInt("12"))
	assert.Equal(t, int64(5415), parseInt("5415.0"))
	assert.Equal(t, int64(0), parseInt("abc"))
	assert.Equal(t, int64(0), parseInt("nan"))
	assert.Equal(t, 7.7, parseFloat("7.7"))
	assert.Equal(t, 0.0, parseFloat(""))
	assert.Equal(t, 0.0, parseFloat("NaN"))

	_, ok := parseOptionalFloat("")
	assert.False(t, ok)
}

func TestComputeReturn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.25, computeReturn(10000000, 2500000))
	assert.Equal(t, 0.0, computeReturn(0, 100))
	assert.Equal(t, 0.0, computeReturn(-1, 100))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	movies, err := decodeMovies(strings.NewReader(moviesCSV))
	require.NoError(t, err)
	cast, err := decodeCast(strings.NewReader(castCSV))
	require.NoError(t, err)
	crew, err := decodeCrew(strings.NewReader(crewCSV))
	require.NoError(t, err)

	ds := normalize("snap", &tables{movies: movies, cast: cast, crew: crew}, log.NewHelper(log.DefaultLogger))

	require.Len(t, ds.Movies, 3, "duplicate movie_id keeps the first row")
	assert.Equal(t, "snap", ds.ID)

	first := ds.Movies[0]
	assert.Equal(t, "Moonlight and Valentino", first.Title)
	require.NotNil(t, first.ReleaseDate)
	assert.Equal(t, time.March, first.ReleaseDate.Month())
	assert.Equal(t, 0.25, first.Return)

	toyStory := ds.Movies[1]
	assert.Equal(t, int64(5415), toyStory.VoteCount)
	assert.InDelta(t, 373554033.0/30000000.0, toyStory.Return, 1e-12, "missing return is computed")

	heat := ds.Movies[2]
	assert.Equal(t, "Heat, Again", heat.Title)
	assert.Nil(t, heat.ReleaseDate)
	assert.Equal(t, int64(0), heat.VoteCount)
	assert.Equal(t, 0.0, heat.Return)

	assert.Len(t, ds.Cast, 3)
	assert.Len(t, ds.Crew, 2)
	assert.Equal(t, "Director", ds.Crew[0].Job)
}

// ---------------------------------------------------------------------------
// CSV decoding
// ---------------------------------------------------------------------------

func TestDecodeMovies_IDAlias(t *testing.T) {
	t.Parallel()

	rows, err := decodeMovies(strings.NewReader("\ufeffID,Title,release_date\n7,Alien,1979-05-25\n\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].ID)
	assert.Equal(t, "Alien", rows[0].Title)
	assert.Nil(t, rows[0].Return)
}

func TestDecode_MissingColumns(t *testing.T) {
	t.Parallel()

	_, err := decodeMovies(strings.NewReader("title\nAlien\n"))
	assert.ErrorContains(t, err, "movie_id")

	_, err = decodeCrew(strings.NewReader("movie_id,name\n1,Ridley Scott\n"))
	assert.ErrorContains(t, err, "job")

	_, err = decodeCast(strings.NewReader(""))
	assert.ErrorContains(t, err, "missing header")
}

// ---------------------------------------------------------------------------
// NewData
// ---------------------------------------------------------------------------

func TestNewData_CSV(t *testing.T) {
	t.Parallel()

	src := writeDataset(t)
	d, cleanup, err := NewData(&conf.Data{Source: src}, log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()

	repo := NewDatasetRepo(d, log.DefaultLogger)
	ds, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Movies, 3)
	assert.NotEmpty(t, ds.ID)

	m, ok := ds.MovieByID(2)
	require.True(t, ok)
	assert.Equal(t, "Toy Story", m.Title)
}

func TestNewData_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := NewData(&conf.Data{}, log.DefaultLogger)
	assert.Error(t, err)

	_, _, err = NewData(&conf.Data{Source: &conf.Data_Source{Kind: "excel"}}, log.DefaultLogger)
	assert.ErrorContains(t, err, "unknown data source kind")

	_, _, err = NewData(&conf.Data{Source: &conf.Data_Source{Kind: "csv", Movies: filepath.Join(t.TempDir(), "nope.csv")}}, log.DefaultLogger)
	assert.ErrorContains(t, err, "nope.csv")
}

func TestMessageCache_WithoutRedis(t *testing.T) {
	t.Parallel()

	d, cleanup, err := NewData(&conf.Data{Source: writeDataset(t)}, log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()

	cache := NewMessageCache(d, log.DefaultLogger)
	cache.Set(context.Background(), "score_titulo", "Heat", "cached")
	_, ok := cache.Get(context.Background(), "score_titulo", "Heat")
	assert.False(t, ok)
}

type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) Log(level log.Level, keyvals ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprint(append([]interface{}{level.String()}, keyvals...)...))
	return nil
}

func (l *captureLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

func newCacheData(t *testing.T, rdb *redis.Client, ttl time.Duration) *Data {
	t.Helper()
	if rdb != nil {
		t.Cleanup(func() { _ = rdb.Close() })
	}
	return &Data{
		dataset: biz.NewDataset("snap-1", nil, nil, nil),
		rdb:     rdb,
		ttl:     ttl,
		log:     log.NewHelper(log.DefaultLogger),
	}
}

func TestMessageCache_KeyAndExpiry(t *testing.T) {
	t.Parallel()

	cache := NewMessageCache(newCacheData(t, nil, 0), log.DefaultLogger).(*messageCache)
	assert.Equal(t, "query:snap-1:score_titulo:Toy Story", cache.key("score_titulo", "Toy Story"))
	assert.Equal(t, defaultCacheTTL, cache.expiry())

	cache = NewMessageCache(newCacheData(t, nil, time.Minute), log.DefaultLogger).(*messageCache)
	assert.Equal(t, time.Minute, cache.expiry())
}

func TestMessageCache_UnreachableRedis(t *testing.T) {
	t.Parallel()

	// a port that was just released refuses connections
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	logger := &captureLogger{}
	cache := NewMessageCache(newCacheData(t, rdb, 0), logger)

	cache.Set(context.Background(), "score_titulo", "Heat", "cached")
	_, ok := cache.Get(context.Background(), "score_titulo", "Heat")
	assert.False(t, ok)
	assert.Contains(t, logger.String(), "failed to cache score_titulo result")
}

func TestMessageCache_Redis(t *testing.T) {
	t.Parallel()

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379", DialTimeout: 200 * time.Millisecond})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		t.Skipf("redis not available: %v", err)
	}
	cache := NewMessageCache(newCacheData(t, rdb, time.Minute), log.DefaultLogger)
	param := fmt.Sprintf("Heat-%d", time.Now().UnixNano())
	key := "query:snap-1:score_titulo:" + param
	t.Cleanup(func() { rdb.Del(context.Background(), key) })

	cache.Set(ctx, "score_titulo", param, "cached")
	got, ok := cache.Get(ctx, "score_titulo", param)
	require.True(t, ok)
	assert.Equal(t, "cached", got)

	ttl, err := rdb.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

// ---------------------------------------------------------------------------
// HTTP source
// ---------------------------------------------------------------------------

func TestHTTPSource_RetriesThenLoads(t *testing.T) {
	t.Parallel()

	var moviesCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		switch r.URL.Path {
		case "/data/movies.csv":
			if moviesCalls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(moviesCSV))
		case "/data/cast.csv":
			_, _ = w.Write([]byte(castCSV))
		case "/data/crew.csv":
			_, _ = w.Write([]byte(crewCSV))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := newHTTPSource(&conf.Data_Source{
		Url:        srv.URL + "/data/",
		ApiKey:     "secret",
		MaxRetries: 2,
		Movies:     "movies.csv",
		Cast:       "cast.csv",
		Crew:       "crew.csv",
	}, log.DefaultLogger)
	defer src.Close()

	raw, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, raw.movies, 4)
	assert.Len(t, raw.cast, 3)
	assert.Len(t, raw.crew, 2)
	assert.Equal(t, int32(2), moviesCalls.Load())
}

func TestHTTPSource_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := newHTTPSource(&conf.Data_Source{
		Url:        srv.URL,
		MaxRetries: 3,
		Movies:     "movies.csv",
	}, log.DefaultLogger)

	_, err := src.Load(context.Background())
	require.ErrorIs(t, err, errRemoteNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestQuoteLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "'data/movies.parquet'", quoteLiteral("data/movies.parquet"))
	assert.Equal(t, "'o''brien.parquet'", quoteLiteral("o'brien.parquet"))
}
