package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JonMunkholm/rollfinder/internal/config"
	"github.com/JonMunkholm/rollfinder/internal/logging"
	"github.com/JonMunkholm/rollfinder/internal/sheet"
)

// StatusLoading is shown while the startup download is in flight.
const StatusLoading = "Loading student data..."

// ErrAlreadyLoaded is returned by a second call to Service.Load.
var ErrAlreadyLoaded = errors.New("load already attempted")

// Fetcher downloads the published export. Satisfied by *sheet.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*sheet.Payload, error)
}

// Status is the message the presentation layer shows above the controls.
// Ready is false until a dataset has loaded; while false every control stays
// disabled.
type Status struct {
	Message   string `json:"message"`
	Error     bool   `json:"error"`
	Code      string `json:"code,omitempty"`
	Action    string `json:"action,omitempty"`
	Ready     bool   `json:"ready"`
	DatasetID string `json:"datasetId,omitempty"`
}

// Service owns the single startup load and the resulting dataset.
//
// The dataset is published atomically once it is complete, together with its
// ready status, so concurrent readers either see nothing or a fully built
// dataset.
type Service struct {
	sourceURL    string
	fetchTimeout time.Duration
	aliases      RoleAliasConfig
	fetcher      Fetcher

	once    sync.Once
	mu      sync.RWMutex
	status  Status
	dataset atomic.Pointer[Dataset]
}

// NewService creates a Service that will load cfg.Source.URL through fetcher.
func NewService(cfg *config.Config, fetcher Fetcher) *Service {
	return &Service{
		sourceURL:    cfg.Source.URL,
		fetchTimeout: cfg.Source.FetchTimeout,
		aliases:      AliasConfigFrom(cfg.Columns),
		fetcher:      fetcher,
		status:       Status{Message: StatusLoading},
	}
}

// Aliases returns the alias table the service resolves columns with.
func (s *Service) Aliases() RoleAliasConfig {
	return s.aliases
}

// Load downloads, parses and indexes the sheet. It runs at most once; later
// calls return ErrAlreadyLoaded. Failures are also published as the status.
func (s *Service) Load(ctx context.Context) error {
	err := ErrAlreadyLoaded
	s.once.Do(func() {
		err = s.load(ctx)
	})
	return err
}

func (s *Service) load(ctx context.Context) error {
	logger := logging.WithFields(ctx, "component", "loader")
	start := time.Now()

	s.setStatus(Status{Message: StatusLoading})

	if err := CheckSourceURL(s.sourceURL); err != nil {
		return s.fail(logger, err)
	}

	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	logger.Info("fetching sheet")
	payload, err := s.fetcher.Fetch(fetchCtx, s.sourceURL)
	if err != nil {
		return s.fail(logger, err)
	}

	ds, err := BuildDataset(payload.Text, s.aliases)
	if err != nil {
		return s.fail(logger, err)
	}
	ds.SourceURL = s.sourceURL
	ds.Charset = payload.Charset

	for header, roles := range ds.Mapping.Shared() {
		logger.Warn("several roles read the same column", "header", header, "roles", roles)
	}

	s.publish(ds)

	logger.Info("sheet loaded",
		"dataset_id", ds.ID,
		"rows", len(ds.Records),
		"headers", len(ds.Headers),
		"bytes", payload.Bytes,
		"charset", payload.Charset,
		"class_column", ds.Mapping[RoleClass],
		"division_column", ds.Mapping[RoleDivision],
		"roll_column", ds.Mapping[RoleRoll],
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// fail publishes err as the status and returns it.
func (s *Service) fail(logger *slog.Logger, err error) error {
	msg := MapError(err)
	s.setStatus(Status{
		Message: err.Error(),
		Error:   true,
		Code:    msg.Code,
		Action:  msg.Action,
	})
	logger.Error("sheet load failed", "error", err, "code", msg.Code)
	return err
}

func (s *Service) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// publish makes ds and its ready status visible together.
func (s *Service) publish(ds *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset.Store(ds)
	s.status = Status{Ready: true, DatasetID: ds.ID}
}

// Snapshot returns the status and dataset as one consistent pair: the
// dataset is non-nil exactly when the status is ready.
func (s *Service) Snapshot() (Status, *Dataset) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.dataset.Load()
}

// Status returns the current status.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Dataset returns the loaded dataset, if any.
func (s *Service) Dataset() (*Dataset, bool) {
	ds := s.dataset.Load()
	return ds, ds != nil
}

// ready returns the dataset or an ErrNotReady carrying the current status.
func (s *Service) ready() (*Dataset, error) {
	if ds, ok := s.Dataset(); ok {
		return ds, nil
	}
	st := s.Status()
	if st.Message == "" {
		return nil, ErrNotReady
	}
	return nil, fmt.Errorf("%w: %s", ErrNotReady, st.Message)
}

// NewCascade starts a cascade over the loaded dataset.
func (s *Service) NewCascade() (*Cascade, error) {
	ds, err := s.ready()
	if err != nil {
		return nil, err
	}
	return ds.NewCascade(), nil
}

// Options returns the option list for one cascade level. Division options
// need class; roll options need class and division.
func (s *Service) Options(role Role, class, division string) ([]string, error) {
	ds, err := s.ready()
	if err != nil {
		return nil, err
	}

	e := ds.Engine()
	switch role {
	case RoleClass:
		return e.ClassValues(), nil
	case RoleDivision:
		return e.DivisionValues(class), nil
	case RoleRoll:
		return e.RollValues(class, division), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownLevel, role)
	}
}

// FindRecord returns the record matching the full selection, or ErrNoMatch.
func (s *Service) FindRecord(class, division, roll string) (sheet.Record, error) {
	ds, err := s.ready()
	if err != nil {
		return nil, err
	}
	rec, ok := ds.Engine().FindRecord(class, division, roll)
	if !ok {
		return nil, ErrNoMatch
	}
	return rec, nil
}
