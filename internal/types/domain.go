package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Document push commands.
const (
	CmdAdd    = "add"
	CmdUpdate = "update"
	CmdDelete = "delete"
)

// DocumentItem is one entry of a push batch.
type DocumentItem struct {
	Cmd       string         `json:"cmd"`
	Timestamp *int64         `json:"timestamp,omitempty"`
	Fields    map[string]any `json:"fields"`
}

// SearchSummary configures result snippet highlighting. Field is required;
// empty strings and nil pointers are omitted.
type SearchSummary struct {
	Field    string
	Element  string
	Ellipsis string
	Snipped  *int
	Length   *int
	Prefix   string
	Postfix  string
}

// String renders summary_<name>:value pairs joined by ",".
func (s SearchSummary) String() string {
	var parts []string
	add := func(name, value string) {
		if value != "" {
			parts = append(parts, "summary_"+name+":"+value)
		}
	}
	addInt := func(name string, v *int) {
		if v != nil {
			parts = append(parts, "summary_"+name+":"+strconv.Itoa(*v))
		}
	}
	add("field", s.Field)
	add("element", s.Element)
	add("ellipsis", s.Ellipsis)
	addInt("snipped", s.Snipped)
	addInt("len", s.Length)
	add("prefix", s.Prefix)
	add("postfix", s.Postfix)
	return strings.Join(parts, ",")
}

// SearchResult is the result payload of /search with format:json.
type SearchResult struct {
	SearchTime float64          `json:"searchtime"`
	Total      int              `json:"total"`
	Num        int              `json:"num"`
	ViewTotal  int              `json:"viewtotal"`
	Items      []map[string]any `json:"items"`
	Facet      json.RawMessage  `json:"facet,omitempty"`
}

// Suggestion is one entry of a suggest result.
type Suggestion struct {
	Suggestion string `json:"suggestion"`
}

// SuggestResult is the result payload of /suggest.
type SuggestResult struct {
	Suggestions []Suggestion `json:"suggestions"`
	SearchTime  float64      `json:"searchtime,omitempty"`
}

// EnqueueAck acknowledges an asynchronous push.
type EnqueueAck struct {
	App    string `json:"app"`
	Table  string `json:"table"`
	Items  int    `json:"items"`
	Status string `json:"status"`
}
