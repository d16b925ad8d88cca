package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/rollfinder/internal/config"
	"github.com/JonMunkholm/rollfinder/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu      sync.Mutex
	calls   int
	payload *sheet.Payload
	err     error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (*sheet.Payload, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func testConfig(url string) *config.Config {
	return &config.Config{
		Source: config.SourceConfig{
			URL:          url,
			FetchTimeout: 5 * time.Second,
		},
	}
}

func loadedService(t *testing.T, text string) *Service {
	t.Helper()
	f := &stubFetcher{payload: &sheet.Payload{Text: text, Charset: sheet.CharsetUTF8, Bytes: len(text)}}
	s := NewService(testConfig("https://sheets.test/pub?output=csv"), f)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestService_InitialStatus(t *testing.T) {
	s := NewService(testConfig("https://sheets.test/pub"), &stubFetcher{})

	st := s.Status()
	assert.Equal(t, StatusLoading, st.Message)
	assert.False(t, st.Ready)
	assert.False(t, st.Error)

	_, ok := s.Dataset()
	assert.False(t, ok)

	_, err := s.FindRecord("10", "A", "1")
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Contains(t, err.Error(), StatusLoading)

	_, err = s.Options(RoleClass, "", "")
	assert.ErrorIs(t, err, ErrNotReady)

	_, err = s.NewCascade()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestService_LoadSuccess(t *testing.T) {
	s := loadedService(t, sampleSheet)

	st := s.Status()
	assert.True(t, st.Ready)
	assert.False(t, st.Error)
	assert.Empty(t, st.Message)

	ds, ok := s.Dataset()
	require.True(t, ok)
	assert.Equal(t, ds.ID, st.DatasetID)
	assert.Equal(t, "https://sheets.test/pub?output=csv", ds.SourceURL)
	assert.Equal(t, sheet.CharsetUTF8, ds.Charset)

	classes, err := s.Options(RoleClass, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "10"}, classes)

	divisions, err := s.Options(RoleDivision, "10", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, divisions)

	rolls, err := s.Options(RoleRoll, "10", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, rolls)

	rec, err := s.FindRecord("10", "B", "2")
	require.NoError(t, err)
	assert.Equal(t, "Bilal", rec["Name"])

	_, err = s.FindRecord("10", "A", "2")
	assert.ErrorIs(t, err, ErrNoMatch)

	c, err := s.NewCascade()
	require.NoError(t, err)
	assert.Equal(t, PhaseNoClass, c.View().Phase)
}

func TestService_OptionsUnknownLevel(t *testing.T) {
	s := loadedService(t, sampleSheet)

	_, err := s.Options(Role("grade"), "", "")
	assert.ErrorIs(t, err, ErrUnknownLevel)
	assert.Equal(t, "REQ001", MapError(err).Code)
}

func TestService_LoadOnlyOnce(t *testing.T) {
	f := &stubFetcher{payload: &sheet.Payload{Text: sampleSheet}}
	s := NewService(testConfig("https://sheets.test/pub"), f)

	require.NoError(t, s.Load(context.Background()))
	assert.ErrorIs(t, s.Load(context.Background()), ErrAlreadyLoaded)
	assert.Equal(t, 1, f.calls)
}

func TestService_LoadFailures(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		fetcher  *stubFetcher
		wantErr  error
		wantCode string
		wantCall bool
	}{
		{
			name:     "empty url",
			url:      "",
			fetcher:  &stubFetcher{},
			wantErr:  ErrSourceNotConfigured,
			wantCode: "CFG001",
		},
		{
			name:     "placeholder url",
			url:      "https://docs.google.com/YOUR_SHEET/pub?output=csv",
			fetcher:  &stubFetcher{},
			wantErr:  ErrSourceNotConfigured,
			wantCode: "CFG001",
		},
		{
			name:     "http error",
			url:      "https://sheets.test/pub",
			fetcher:  &stubFetcher{err: &sheet.FetchError{URL: "https://sheets.test/pub", StatusCode: 404, Status: "404 Not Found"}},
			wantCode: "FETCH002",
			wantCall: true,
		},
		{
			name:     "empty sheet",
			url:      "https://sheets.test/pub",
			fetcher:  &stubFetcher{payload: &sheet.Payload{Text: ""}},
			wantErr:  ErrNoData,
			wantCode: "DATA001",
			wantCall: true,
		},
		{
			name:     "missing roll column",
			url:      "https://sheets.test/pub",
			fetcher:  &stubFetcher{payload: &sheet.Payload{Text: "Class,Division,Name\n10,A,Asha\n"}},
			wantCode: "COL001",
			wantCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(testConfig(tt.url), tt.fetcher)

			err := s.Load(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantCall, tt.fetcher.calls > 0)

			st := s.Status()
			assert.True(t, st.Error)
			assert.False(t, st.Ready)
			assert.Equal(t, tt.wantCode, st.Code)
			assert.Equal(t, err.Error(), st.Message)
			assert.NotEmpty(t, st.Action)

			_, err = s.FindRecord("10", "A", "1")
			assert.ErrorIs(t, err, ErrNotReady)
			assert.Contains(t, err.Error(), st.Message)
		})
	}
}

func TestService_SharedHeaderStillLoads(t *testing.T) {
	s := loadedService(t, "Class Division,Roll,Name\n10,1,Asha\n")

	ds, ok := s.Dataset()
	require.True(t, ok)
	assert.Equal(t, "Class Division", ds.Mapping[RoleClass])
	assert.Equal(t, "Class Division", ds.Mapping[RoleDivision])

	rec, err := s.FindRecord("10", "10", "1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", rec["Name"])
}

func TestService_LoadThroughHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleSheet))
	}))
	defer srv.Close()

	s := NewService(testConfig(srv.URL+"/pub?output=csv"), sheet.NewFetcher(srv.Client(), 0, "rollfinder-test"))
	require.NoError(t, s.Load(context.Background()))

	rec, err := s.FindRecord("9", "A", "1")
	require.NoError(t, err)
	assert.Equal(t, "Chen, Li", rec["Name"])
}

func TestService_LoadHTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := NewService(testConfig(srv.URL+"/pub"), sheet.NewFetcher(srv.Client(), 0, ""))
	err := s.Load(context.Background())

	var fe *sheet.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.Equal(t, "FETCH002", s.Status().Code)
}

func TestService_ConcurrentReaders(t *testing.T) {
	f := &stubFetcher{payload: &sheet.Payload{Text: sampleSheet}}
	s := NewService(testConfig("https://sheets.test/pub"), f)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := s.FindRecord("10", "B", "2"); err != nil &&
					!errors.Is(err, ErrNotReady) {
					t.Errorf("unexpected error: %v", err)
				}
				_ = s.Status()
			}
		}()
	}

	require.NoError(t, s.Load(context.Background()))
	wg.Wait()

	_, err := s.FindRecord("10", "B", "2")
	assert.NoError(t, err)
}

// gatedFetcher blocks until release is closed so readers are already running
// when the dataset is published.
type gatedFetcher struct {
	release chan struct{}
	payload *sheet.Payload
}

func (f *gatedFetcher) Fetch(ctx context.Context, url string) (*sheet.Payload, error) {
	<-f.release
	return f.payload, nil
}

func TestService_SnapshotConsistent(t *testing.T) {
	f := &gatedFetcher{release: make(chan struct{}), payload: &sheet.Payload{Text: sampleSheet}}
	s := NewService(testConfig("https://sheets.test/pub"), f)

	st, ds := s.Snapshot()
	assert.False(t, st.Ready)
	assert.Nil(t, ds)

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				st, ds := s.Snapshot()
				if (ds != nil) != st.Ready {
					t.Errorf("snapshot ready = %v with dataset = %v", st.Ready, ds != nil)
					return
				}
				if ds != nil && st.DatasetID != ds.ID {
					t.Errorf("snapshot dataset id = %s, want %s", st.DatasetID, ds.ID)
					return
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}

	loaded := make(chan error, 1)
	go func() { loaded <- s.Load(context.Background()) }()
	close(f.release)
	require.NoError(t, <-loaded)

	close(done)
	wg.Wait()

	st, ds = s.Snapshot()
	assert.True(t, st.Ready)
	require.NotNil(t, ds)
	assert.Equal(t, ds.ID, st.DatasetID)
}
