// Package analytics records catalog searches and summarises them for the dashboard.
package analytics

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gcbaptista/go-library/model"
	"github.com/gcbaptista/go-library/services"
)

const (
	// DataFileName is the file analytics events are kept in, inside the data directory.
	DataFileName    = "analytics.json"
	maxEventsToKeep = 10000 // Keep last 10k events for performance
	popularLimit    = 5
)

// CatalogStats is the part of the catalog the dashboard reports on.
type CatalogStats interface {
	ListCollections() []string
	Collection(name string) (services.CollectionInfo, error)
}

// Service implements analytics tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	saveMutex    sync.Mutex
	events       []model.SearchEvent
	catalog      CatalogStats
	dataFilePath string
	now          func() time.Time
}

// NewService creates a new analytics service persisting to dataFilePath.
// An empty path keeps events in memory only.
func NewService(catalog CatalogStats, dataFilePath string) *Service {
	service := &Service{
		events:       make([]model.SearchEvent, 0),
		catalog:      catalog,
		dataFilePath: dataFilePath,
		now:          time.Now,
	}

	if err := service.loadData(); err != nil {
		log.Printf("Warning: Failed to load analytics data: %v", err)
	}

	return service
}

// TrackSearchEvent records a new search event
func (s *Service) TrackSearchEvent(event model.SearchEvent) error {
	s.mutex.Lock()
	event.Timestamp = s.now()
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
	snapshot := make([]model.SearchEvent, len(s.events))
	copy(snapshot, s.events)
	s.mutex.Unlock()

	return s.saveData(snapshot)
}

// EventCount returns the number of retained events.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := s.now()
	last24hEvents := filterEventsByTime(s.events, now.Add(-24*time.Hour))
	lastWeekEvents := filterEventsByTime(s.events, now.Add(-7*24*time.Hour))

	usage := s.getCollectionUsage(lastWeekEvents)
	totalItems := 0
	for _, u := range usage {
		totalItems += u.ItemCount
	}

	return model.AnalyticsDashboard{
		TotalSearches:     len(last24hEvents),
		AvgResponseTime:   calculateAvgResponseTime(last24hEvents),
		ZeroResultQueries: countZeroResultQueries(last24hEvents),
		TotalItems:        totalItems,
		Collections:       len(usage),
		PopularSearches:   getPopularSearches(lastWeekEvents),
		CollectionUsage:   usage,
		SearchTypes:       getSearchTypeStats(last24hEvents),
	}
}

// filterEventsByTime returns events after the given time
func filterEventsByTime(events []model.SearchEvent, after time.Time) []model.SearchEvent {
	var filtered []model.SearchEvent
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func calculateAvgResponseTime(events []model.SearchEvent) int64 {
	if len(events) == 0 {
		return 0
	}
	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Milliseconds()
}

func countZeroResultQueries(events []model.SearchEvent) int {
	count := 0
	for _, event := range events {
		if event.Query != "" && event.ResultCount == 0 {
			count++
		}
	}
	return count
}

// getPopularSearches returns the most frequent queries. Queries differing only
// in case or surrounding whitespace are counted together.
func getPopularSearches(events []model.SearchEvent) []model.PopularSearch {
	queryCounts := make(map[string]int)
	for _, event := range events {
		key := strings.ToLower(strings.TrimSpace(event.Query))
		if key != "" {
			queryCounts[key]++
		}
	}

	popular := make([]model.PopularSearch, 0, len(queryCounts))
	for query, count := range queryCounts {
		popular = append(popular, model.PopularSearch{Query: query, SearchCount: count})
	}

	// Sort by count descending, then alphabetically for a stable order
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > popularLimit {
		popular = popular[:popularLimit]
	}
	return popular
}

// getCollectionUsage returns item and search counts for each collection
func (s *Service) getCollectionUsage(events []model.SearchEvent) []model.CollectionStats {
	searchCounts := make(map[string]int)
	for _, event := range events {
		searchCounts[event.Collection]++
	}

	usage := make([]model.CollectionStats, 0)
	if s.catalog == nil {
		return usage
	}
	for _, name := range s.catalog.ListCollections() {
		stats := model.CollectionStats{Collection: name, SearchCount: searchCounts[name]}
		if info, err := s.catalog.Collection(name); err == nil {
			stats.ItemCount = info.ItemCount
		}
		usage = append(usage, stats)
	}
	return usage
}

func getSearchTypeStats(events []model.SearchEvent) model.SearchTypeStats {
	var stats model.SearchTypeStats
	for _, event := range events {
		switch event.SearchType {
		case model.SearchTypeSimple:
			stats.Simple++
		case model.SearchTypeAdvanced:
			stats.Advanced++
		case model.SearchTypeFiltered:
			stats.Filtered++
		default:
			stats.Browse++
		}
	}
	return stats
}

// loadData loads analytics data from file
func (s *Service) loadData() error {
	if s.dataFilePath == "" {
		return nil
	}

	data, err := os.ReadFile(s.dataFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist yet, that's okay
		}
		return fmt.Errorf("failed to read analytics file: %w", err)
	}

	if err := json.Unmarshal(data, &s.events); err != nil {
		return fmt.Errorf("failed to unmarshal analytics data: %w", err)
	}
	return nil
}

// saveData writes events to file
func (s *Service) saveData(events []model.SearchEvent) error {
	if s.dataFilePath == "" {
		return nil
	}

	s.saveMutex.Lock()
	defer s.saveMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.dataFilePath), 0750); err != nil {
		return fmt.Errorf("failed to create analytics directory: %w", err)
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analytics data: %w", err)
	}

	if err := os.WriteFile(s.dataFilePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write analytics file: %w", err)
	}
	return nil
}
