package config

import (
	"fmt"

	"github.com/patrickmn/go-cache"
)

// AnalysisCache memoizes one YearlyAnalysis per selected year. Entries
// never expire: a past year's export does not change within a session,
// and a deployment holds at most a dozen years, so unbounded growth is
// acceptable. Re-selecting a year must never re-read its files.
var AnalysisCache *cache.Cache

func InitCache() {
	AnalysisCache = cache.New(cache.NoExpiration, 0)
}

func ClearAllCaches() {
	AnalysisCache.Flush()
}

func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
