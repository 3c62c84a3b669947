package query

import (
	"strconv"
	"strings"
)

// Aggregate describes one aggregate clause descriptor. Zero-valued optional
// fields are omitted from the rendered statement.
type Aggregate struct {
	GroupKey         string
	AggFuns          []string // joined with "#"
	Range            string
	Filter           string
	SamplerThreshold int
	SamplerStep      int
	MaxGroup         *int // rendered whenever set, including zero
}

func (a Aggregate) String() string {
	pairs := pairList{}
	pairs.add("group_key", a.GroupKey)
	pairs.add("agg_fun", strings.Join(a.AggFuns, "#"))
	pairs.add("range", a.Range)
	if a.Filter != "" {
		pairs.add("agg_filter", a.Filter)
	}
	if a.SamplerThreshold != 0 {
		pairs.add("agg_sampler_threshold", strconv.Itoa(a.SamplerThreshold))
	}
	if a.SamplerStep != 0 {
		pairs.add("agg_sampler_step", strconv.Itoa(a.SamplerStep))
	}
	if a.MaxGroup != nil {
		pairs.add("max_group", strconv.Itoa(*a.MaxGroup))
	}
	return pairs.String()
}

// Distinct describes the dedup clause. Only DistKey is required; nil
// pointers and an empty Filter are left out of the statement.
type Distinct struct {
	DistKey        string
	Times          *int
	Count          *int
	Reserved       *bool
	UpdateTotalHit *bool
	Filter         string
	Grade          *float64
}

func (d Distinct) String() string {
	pairs := pairList{}
	pairs.add("dist_key", d.DistKey)
	if d.Times != nil {
		pairs.add("dist_times", strconv.Itoa(*d.Times))
	}
	if d.Count != nil {
		pairs.add("dist_count", strconv.Itoa(*d.Count))
	}
	if d.Reserved != nil {
		pairs.add("reserved", strconv.FormatBool(*d.Reserved))
	}
	if d.UpdateTotalHit != nil {
		pairs.add("update_total_hit", strconv.FormatBool(*d.UpdateTotalHit))
	}
	if d.Filter != "" {
		pairs.add("dist_filter", d.Filter)
	}
	if d.Grade != nil {
		pairs.add("grade", formatFloat(*d.Grade))
	}
	return pairs.String()
}

// Int returns a pointer to v, for optional Aggregate and Distinct fields.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// pairList renders ordered key:value pairs joined by ",".
type pairList struct {
	keys   []string
	values map[string]string
}

// add inserts or overwrites key; an overwritten key keeps its position.
func (p *pairList) add(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *pairList) len() int { return len(p.keys) }

func (p *pairList) String() string {
	parts := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		parts = append(parts, k+":"+p.values[k])
	}
	return strings.Join(parts, ",")
}
