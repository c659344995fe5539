package db

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache keys are tracked in registries per domain so that every cached view
// belonging to a user can be dropped when that user writes.
var (
	Cache            *ristretto.Cache
	SummaryCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
	BudgetCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

// SummaryCacheKey identifies one user's analytics summary for one date range.
// The full timestamps go into the key: two ranges on the same calendar dates
// but different times of day are distinct ranges and must not share an entry.
func SummaryCacheKey(userID int, from, to time.Time) string {
	return fmt.Sprintf("summary:%d:%s:%s", userID, from.Format(time.RFC3339), to.Format(time.RFC3339))
}

// BudgetListCacheKey identifies one user's budget list with usage figures.
func BudgetListCacheKey(userID int) string {
	return fmt.Sprintf("budgets:%d", userID)
}

func userPrefix(userID int) string {
	return fmt.Sprintf(":%d:", userID)
}

// Summary Cache Functions
func SetSummaryCache(cacheKey string, value interface{}) {
	SummaryCacheKeys.Lock()
	SummaryCacheKeys.m[cacheKey] = struct{}{}
	SummaryCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func ClearUserSummaryCaches(userID int) {
	prefix := "summary" + userPrefix(userID)
	SummaryCacheKeys.Lock()
	for key := range SummaryCacheKeys.m {
		if strings.HasPrefix(key, prefix) {
			Cache.Del(key)
			delete(SummaryCacheKeys.m, key)
		}
	}
	SummaryCacheKeys.Unlock()
}

// Budget List Cache Functions
func SetBudgetListCache(cacheKey string, value interface{}) {
	BudgetCacheKeys.Lock()
	BudgetCacheKeys.m[cacheKey] = struct{}{}
	BudgetCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func ClearUserBudgetCaches(userID int) {
	key := BudgetListCacheKey(userID)
	BudgetCacheKeys.Lock()
	delete(BudgetCacheKeys.m, key)
	BudgetCacheKeys.Unlock()
	Cache.Del(key)
}

// InvalidateUserCaches drops every cached view derived from a user's data.
// Called after any write to the user's categories, transactions or budgets.
func InvalidateUserCaches(userID int) {
	ClearUserSummaryCaches(userID)
	ClearUserBudgetCaches(userID)
}
