// File: utils/constants.go
package utils

import "time"

// QuoteCachePrefix is the prefix used for Redis quote cache keys.
const QuoteCachePrefix = "quote:"

// QuoteCacheTTL is the time-to-live for cached quote snapshots.
const QuoteCacheTTL = 10 * time.Minute
