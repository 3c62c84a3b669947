package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/findyi/opensearch-go/internal/errors"
)

var relationOperators = map[string]bool{
	">": true, "<": true, "=": true, "<=": true, ">=": true, "!=": true,
}

var arithmeticOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "&": true, "^": true, "|": true,
}

// SimpleQuery builds clauses from structured input. Sort, kvpair and
// aggregate entries accumulate and are collapsed into their clauses by
// Build.
//
// Invalid arguments do not break the chain: the first one is recorded and
// returned by Err and Build.
type SimpleQuery struct {
	raw        RawQuery
	sorts      []string
	kvpairs    pairList
	aggregates []string
	err        error
}

// NewSimpleQuery returns an empty SimpleQuery.
func NewSimpleQuery() *SimpleQuery {
	return &SimpleQuery{}
}

// Raw clause setters, chained on SimpleQuery.

func (q *SimpleQuery) Query(stmt string) *SimpleQuery     { q.raw.Query(stmt); return q }
func (q *SimpleQuery) Config(stmt string) *SimpleQuery    { q.raw.Config(stmt); return q }
func (q *SimpleQuery) Filter(stmt string) *SimpleQuery    { q.raw.Filter(stmt); return q }
func (q *SimpleQuery) Sort(stmt string) *SimpleQuery      { q.raw.Sort(stmt); return q }
func (q *SimpleQuery) Aggregate(stmt string) *SimpleQuery { q.raw.Aggregate(stmt); return q }
func (q *SimpleQuery) Distinct(stmt string) *SimpleQuery  { q.raw.Distinct(stmt); return q }
func (q *SimpleQuery) KVPair(stmt string) *SimpleQuery    { q.raw.KVPair(stmt); return q }

// QueryByKeyword searches keyword in the default index.
func (q *SimpleQuery) QueryByKeyword(keyword string) *SimpleQuery {
	return q.QueryBy("default", keyword)
}

// QueryOption tunes QueryBy.
type QueryOption func(*queryTerm)

type queryTerm struct {
	boost int
}

// WithBoost appends ^boost to the query term. Zero means no boost.
func WithBoost(boost int) QueryOption {
	return func(t *queryTerm) { t.boost = boost }
}

// QueryBy sets the query clause to field:keyword, or field:keyword^boost.
func (q *SimpleQuery) QueryBy(field, keyword string, opts ...QueryOption) *SimpleQuery {
	var term queryTerm
	for _, opt := range opts {
		opt(&term)
	}
	if term.boost != 0 {
		return q.Query(fmt.Sprintf("%s:%s^%d", field, keyword, term.boost))
	}
	return q.Query(field + ":" + keyword)
}

// ConfigOption overrides one field of the config clause.
type ConfigOption func(*configStmt)

type configStmt struct {
	start      int
	hint       int
	format     string
	rerankSize int
}

func WithStart(start int) ConfigOption           { return func(c *configStmt) { c.start = start } }
func WithHint(hint int) ConfigOption             { return func(c *configStmt) { c.hint = hint } }
func WithFormat(format string) ConfigOption      { return func(c *configStmt) { c.format = format } }
func WithRerankSize(rerankSize int) ConfigOption { return func(c *configStmt) { c.rerankSize = rerankSize } }

// ConfigBy sets the config clause. Defaults: start 0, hint 10, format json,
// rerank_size 200.
func (q *SimpleQuery) ConfigBy(opts ...ConfigOption) *SimpleQuery {
	c := configStmt{start: 0, hint: 10, format: "json", rerankSize: 200}
	for _, opt := range opts {
		opt(&c)
	}
	return q.Config(fmt.Sprintf("start:%d,hint:%d,format:%s,rerank_size:%d", c.start, c.hint, c.format, c.rerankSize))
}

// FilterBy sets the filter clause to field<operator>value.
//
// String values accept arithmetic operators only and are quoted. Numeric
// values accept arithmetic and relational operators and are not quoted.
func (q *SimpleQuery) FilterBy(field, operator string, value any) *SimpleQuery {
	if s, ok := value.(string); ok {
		if !arithmeticOperators[operator] {
			return q.fail(errors.Argumentf("only support arithmetic operator if value is string"))
		}
		return q.Filter(field + operator + `"` + s + `"`)
	}

	num, ok := formatNumber(value)
	if !ok {
		return q.fail(errors.Argumentf("unsupported filter value type %T", value))
	}
	if !arithmeticOperators[operator] && !relationOperators[operator] {
		return q.fail(errors.Argumentf("invalid operator: %s", operator))
	}
	return q.Filter(field + operator + num)
}

// AddSort appends field to the sort clause, ascending when asc is true.
func (q *SimpleQuery) AddSort(field string, asc bool) *SimpleQuery {
	if asc {
		q.sorts = append(q.sorts, "+"+field)
	} else {
		q.sorts = append(q.sorts, "-"+field)
	}
	return q
}

// SetKVPair sets key in the kvpair clause.
func (q *SimpleQuery) SetKVPair(key, value string) *SimpleQuery {
	q.kvpairs.add(key, value)
	return q
}

// AddAggregate appends one descriptor to the aggregate clause.
func (q *SimpleQuery) AddAggregate(agg Aggregate) *SimpleQuery {
	if agg.GroupKey == "" {
		return q.fail(errors.Argumentf("aggregate group_key is required"))
	}
	q.aggregates = append(q.aggregates, agg.String())
	return q
}

// DistinctBy sets the distinct clause.
func (q *SimpleQuery) DistinctBy(d Distinct) *SimpleQuery {
	if d.DistKey == "" {
		return q.fail(errors.Argumentf("dist_key is required"))
	}
	return q.Distinct(d.String())
}

// DistinctByUnique dedups on distKey keeping one document per value.
func (q *SimpleQuery) DistinctByUnique(distKey string) *SimpleQuery {
	q.SetKVPair("duniqfield", distKey)
	return q.DistinctBy(Distinct{DistKey: distKey, Reserved: Bool(false)})
}

// Err returns the first argument error recorded by the chain.
func (q *SimpleQuery) Err() error {
	return q.err
}

// Build collapses accumulated sorts, kvpairs and aggregates into their
// clauses and renders the query string.
func (q *SimpleQuery) Build() (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if len(q.sorts) > 0 {
		q.raw.Sort(strings.Join(q.sorts, ";"))
	}
	if q.kvpairs.len() > 0 {
		q.raw.KVPair(q.kvpairs.String())
	}
	if len(q.aggregates) > 0 {
		q.raw.Aggregate(strings.Join(q.aggregates, ";"))
	}
	return q.raw.Build()
}

func (q *SimpleQuery) fail(err error) *SimpleQuery {
	if q.err == nil {
		q.err = err
	}
	return q
}

func formatNumber(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		// Shortest float32 digits first, so float32(0.1) renders as 0.1.
		f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(n), 'g', -1, 32), 64)
		return formatFloat(f), true
	case float64:
		return formatFloat(n), true
	default:
		return "", false
	}
}

// formatFloat renders f with 12 significant digits, switching to exponent
// form for large and small magnitudes, and keeps a ".0" on whole numbers:
// 2.0 -> "2.0", 1e21 -> "1e+21", 0.1+0.2 -> "0.3".
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', 12, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
