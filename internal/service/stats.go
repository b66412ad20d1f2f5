// stats.go — статистика количества фичей по категориям.
package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/bigkaa/fichas-admin/internal/domain/schema"
)

// statsKey — единственный ключ кэша статистики.
const statsKey = "stats"

// maxParallelCounts — число одновременных COUNT(*).
const maxParallelCounts = 6

// TableCounter считает записи в таблице.
// Реализуется repository.RecordRepository.
type TableCounter interface {
	Count(ctx context.Context, table string) (int64, error)
}

// Stats — количество записей по таблицам и группам.
type Stats struct {
	// Detallado — таблица → количество
	Detallado map[string]int64
	// Groups — группа → сумма по её таблицам
	Groups map[schema.StatsGroup]int64
	// Total — сумма по всем таблицам
	Total int64
}

// StatsService считает статистику и кэширует её на ttl.
type StatsService struct {
	registry *schema.Registry
	counter  TableCounter
	cache    *expirable.LRU[string, *Stats]
	// gen растёт при каждом Invalidate; результат подсчёта,
	// начатого до сброса, в кэш не попадает.
	gen    atomic.Uint64
	logger *slog.Logger
}

// NewStatsService создаёт StatsService. ttl = 0 отключает кэш.
func NewStatsService(registry *schema.Registry, counter TableCounter, ttl time.Duration, logger *slog.Logger) *StatsService {
	s := &StatsService{
		registry: registry,
		counter:  counter,
		logger:   logger.With(slog.String("component", "stats_service")),
	}
	if ttl > 0 {
		s.cache = expirable.NewLRU[string, *Stats](1, nil, ttl)
	}
	return s
}

// Get возвращает статистику. Таблица, которую не удалось посчитать, даёт 0.
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		if st, ok := s.cache.Get(statsKey); ok {
			return st, nil
		}
	}
	gen := s.gen.Load()

	categories := s.registry.All()
	counts := make([]int64, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelCounts)
	for i, c := range categories {
		g.Go(func() error {
			n, err := s.counter.Count(gctx, c.Table)
			if err != nil {
				s.logger.Warn("Не удалось посчитать записи",
					slog.String("table", c.Table),
					slog.String("error", err.Error()),
				)
				return nil
			}
			counts[i] = n
			return nil
		})
	}
	_ = g.Wait()

	// Отменённый запрос даёт нули, такой результат не кэшируется.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st := &Stats{
		Detallado: make(map[string]int64, len(categories)),
		Groups:    make(map[schema.StatsGroup]int64, len(schema.StatsGroups)),
	}
	for _, g := range schema.StatsGroups {
		st.Groups[g] = 0
	}
	for i, c := range categories {
		st.Detallado[c.Table] = counts[i]
		st.Groups[c.Stats] += counts[i]
		st.Total += counts[i]
	}

	if s.cache != nil && s.gen.Load() == gen {
		s.cache.Add(statsKey, st)
	}
	return st, nil
}

// Invalidate сбрасывает кэш после изменения данных.
func (s *StatsService) Invalidate() {
	s.gen.Add(1)
	if s.cache != nil {
		s.cache.Purge()
	}
}
