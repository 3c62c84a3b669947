package job

import (
	"hash/fnv"
	"strconv"
)

// Key is the executor key of a table: pushes to one table stay in order.
func Key(app, table string) string {
	return app + "/" + table
}

// ShardLabel hashes key to a stable small cardinality metric label (0-31).
func ShardLabel(key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return strconv.FormatUint(uint64(h.Sum32()%32), 10)
}
