package quality

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hydrowatch/hydrowatch/internal/catalog"
	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

// InferenceClient is the outbound port to the prediction service.
type InferenceClient interface {
	Predict(ctx context.Context, coordinates [][]float64, start, end time.Time) ([]Reading, error)
	Current(ctx context.Context, coordinates [][]float64) (Reading, error)
}

// CatalogPort supplies the registry of monitored lakes.
type CatalogPort interface {
	List(ctx context.Context) ([]catalog.WaterBody, error)
	Get(ctx context.Context, id string) (*catalog.WaterBody, error)
}

// overviewConcurrency bounds parallel inference calls during fan-out.
const overviewConcurrency = 4

// Service derives dashboard data from inference readings.
type Service struct {
	catalog   CatalogPort
	inference InferenceClient
	cache     *Cache
	logger    *slog.Logger
	now       func() time.Time
}

// NewService builds a Service instance.
func NewService(catalogPort CatalogPort, inference InferenceClient, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		catalog:   catalogPort,
		inference: inference,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// spanStart maps a span label to the start of its date range. The 1W window
// reaches back 20 days because satellite passes are sparse and a literal week
// often charts empty.
func spanStart(span string, now time.Time) (time.Time, error) {
	switch span {
	case "1W":
		return now.AddDate(0, 0, -20), nil
	case "", "1M":
		return now.AddDate(0, -1, 0), nil
	case "6M":
		return now.AddDate(0, -6, 0), nil
	case "1Y":
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown span %q: %w", span, httpx.ErrValidation)
	}
}

// History returns time-indexed readings for one lake over a span.
func (s *Service) History(ctx context.Context, waterBodyID, span string) ([]Reading, error) {
	now := s.now()
	start, err := spanStart(span, now)
	if err != nil {
		return nil, err
	}
	body, err := s.catalog.Get(ctx, waterBodyID)
	if err != nil {
		return nil, err
	}

	var readings []Reading
	err = s.cache.FetchJSON(ctx, historyKey(waterBodyID, span), &readings, func(ctx context.Context) (interface{}, error) {
		return s.inference.Predict(ctx, body.Coordinates, start, now)
	})
	if err != nil {
		return nil, err
	}
	return readings, nil
}

// Latest returns the lake's most recent reading with its bucketed status.
func (s *Service) Latest(ctx context.Context, waterBodyID string) (*Snapshot, error) {
	body, err := s.catalog.Get(ctx, waterBodyID)
	if err != nil {
		return nil, err
	}

	var snapshot Snapshot
	err = s.cache.FetchJSON(ctx, latestKey(waterBodyID), &snapshot, func(ctx context.Context) (interface{}, error) {
		reading, err := s.inference.Current(ctx, body.Coordinates)
		if err != nil {
			return nil, err
		}
		return snapshotFor(*body, reading), nil
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Overview returns the fleet aggregation, cached between refreshes.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var overview Overview
	err := s.cache.FetchJSON(ctx, keyOverview, &overview, func(ctx context.Context) (interface{}, error) {
		return s.buildOverview(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

// RefreshOverview rebuilds the fleet aggregation and overwrites the cache
// entry. The background worker calls this on a schedule.
func (s *Service) RefreshOverview(ctx context.Context) (*Overview, error) {
	overview, err := s.buildOverview(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.StoreJSON(ctx, keyOverview, overview); err != nil {
		return nil, err
	}
	return overview, nil
}

// RefreshLake drops the lake's cached history entries and rebuilds its
// latest snapshot so the next dashboard read is warm.
func (s *Service) RefreshLake(ctx context.Context, waterBodyID string) error {
	body, err := s.catalog.Get(ctx, waterBodyID)
	if err != nil {
		return err
	}

	keys := []string{latestKey(waterBodyID)}
	for _, span := range []string{"1W", "1M", "6M", "1Y"} {
		keys = append(keys, historyKey(waterBodyID, span))
	}
	if err := s.cache.Drop(ctx, keys...); err != nil {
		return err
	}

	reading, err := s.inference.Current(ctx, body.Coordinates)
	if err != nil {
		return err
	}
	return s.cache.StoreJSON(ctx, latestKey(waterBodyID), snapshotFor(*body, reading))
}

// buildOverview fans out one inference call per lake. Lakes whose fetch
// fails are logged and skipped so one bad polygon cannot blank the
// dashboard.
func (s *Service) buildOverview(ctx context.Context) (*Overview, error) {
	bodies, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		snapshots []Snapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewConcurrency)
	for _, body := range bodies {
		body := body
		g.Go(func() error {
			reading, err := s.inference.Current(gctx, body.Coordinates)
			if err != nil {
				if s.logger != nil {
					s.logger.Warn("skip lake in overview",
						slog.String("water_body", body.Name), slog.Any("error", err))
				}
				return nil
			}
			mu.Lock()
			snapshots = append(snapshots, snapshotFor(body, reading))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := BuildOverview(snapshots)
	overview.GeneratedAt = s.now().UTC()
	return overview, nil
}

func snapshotFor(body catalog.WaterBody, reading Reading) Snapshot {
	return Snapshot{
		WaterBodyID: body.ID,
		Name:        body.Name,
		Location:    body.Location,
		Reading:     reading,
		Status:      StatusForTurbidity(reading.Turbidity),
	}
}

// BuildOverview reduces per-lake snapshots into the dashboard aggregates.
func BuildOverview(snapshots []Snapshot) *Overview {
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name < snapshots[j].Name
	})

	overview := &Overview{
		Lakes:              snapshots,
		StatusDistribution: make(map[Status]int),
	}
	if len(snapshots) == 0 {
		overview.Lakes = []Snapshot{}
		overview.WorstLakes = []Snapshot{}
		return overview
	}

	var sumTurbidity, sumNDVI, sumNDWI float64
	for _, snap := range snapshots {
		sumTurbidity += snap.Reading.Turbidity
		sumNDVI += snap.Reading.NDVI
		sumNDWI += snap.Reading.NDWI
		overview.StatusDistribution[snap.Status]++
		if snap.Status == StatusCritical {
			overview.CriticalCount++
		}
	}
	n := float64(len(snapshots))
	overview.AvgTurbidity = sumTurbidity / n
	overview.AvgNDVI = sumNDVI / n
	overview.AvgNDWI = sumNDWI / n

	worst := make([]Snapshot, len(snapshots))
	copy(worst, snapshots)
	sort.Slice(worst, func(i, j int) bool {
		return worst[i].Reading.Turbidity > worst[j].Reading.Turbidity
	})
	if len(worst) > 3 {
		worst = worst[:3]
	}
	overview.WorstLakes = worst

	return overview
}
