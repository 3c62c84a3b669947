// Package query assembles search statements in the service's clause
// grammar: clause=value pairs joined by "&&".
package query

import (
	"strings"

	"github.com/findyi/opensearch-go/internal/errors"
)

// Clause names one segment of the query string.
type Clause int

const (
	ClauseQuery Clause = iota
	ClauseConfig
	ClauseFilter
	ClauseSort
	ClauseAggregate
	ClauseDistinct
	ClauseKVPair
)

var clauseNames = [...]string{
	ClauseQuery:     "query",
	ClauseConfig:    "config",
	ClauseFilter:    "filter",
	ClauseSort:      "sort",
	ClauseAggregate: "aggregate",
	ClauseDistinct:  "distinct",
	ClauseKVPair:    "kvpair",
}

// String returns the wire key of the clause.
func (c Clause) String() string {
	if c < 0 || int(c) >= len(clauseNames) {
		return "unknown"
	}
	return clauseNames[c]
}

// Builder is implemented by every query type accepted by Search.
type Builder interface {
	Build() (string, error)
}

// RawQuery holds verbatim clause statements.
//
// Clauses are rendered in the order each kind was first set; setting a kind
// again replaces its value but keeps its position. A RawQuery must not be
// shared between concurrent requests.
type RawQuery struct {
	stmts map[Clause]string
	order []Clause
}

// NewRawQuery returns an empty RawQuery.
func NewRawQuery() *RawQuery {
	return &RawQuery{stmts: make(map[Clause]string)}
}

// Set stores stmt as the value of clause c.
func (q *RawQuery) Set(c Clause, stmt string) *RawQuery {
	if q.stmts == nil {
		q.stmts = make(map[Clause]string)
	}
	if _, ok := q.stmts[c]; !ok {
		q.order = append(q.order, c)
	}
	q.stmts[c] = stmt
	return q
}

// Get returns the statement of clause c, if set.
func (q *RawQuery) Get(c Clause) (string, bool) {
	stmt, ok := q.stmts[c]
	return stmt, ok
}

func (q *RawQuery) Query(stmt string) *RawQuery     { return q.Set(ClauseQuery, stmt) }
func (q *RawQuery) Config(stmt string) *RawQuery    { return q.Set(ClauseConfig, stmt) }
func (q *RawQuery) Filter(stmt string) *RawQuery    { return q.Set(ClauseFilter, stmt) }
func (q *RawQuery) Sort(stmt string) *RawQuery      { return q.Set(ClauseSort, stmt) }
func (q *RawQuery) Aggregate(stmt string) *RawQuery { return q.Set(ClauseAggregate, stmt) }
func (q *RawQuery) Distinct(stmt string) *RawQuery  { return q.Set(ClauseDistinct, stmt) }
func (q *RawQuery) KVPair(stmt string) *RawQuery    { return q.Set(ClauseKVPair, stmt) }

// Build renders the clauses as key=value joined by "&&". It fails with a
// QueryError when no query clause is set.
func (q *RawQuery) Build() (string, error) {
	if _, ok := q.stmts[ClauseQuery]; !ok {
		return "", &errors.QueryError{Msg: "query statement required."}
	}
	parts := make([]string, 0, len(q.order))
	for _, c := range q.order {
		parts = append(parts, c.String()+"="+q.stmts[c])
	}
	return strings.Join(parts, "&&"), nil
}
