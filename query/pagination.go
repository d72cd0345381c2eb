package query

import (
	"encoding/json"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/datastax/data-api-query/types"
)

// ResolvePagination turns either pagination convention into a bounded
// offset and limit. {page, per_page} wins over range when both are given;
// page is 1-based. Arithmetic saturates instead of wrapping and the result
// is always capped to the configured maximum page size and offset.
func (q *Compiler) ResolvePagination(params types.PageParams) types.PageSpec {
	page, hasPage := parseCount(params.Page)
	perPage, hasPerPage := parseCount(params.PerPage)

	spec := types.PageSpec{Offset: 0, Limit: q.limits.DefaultPageSize}
	switch {
	case hasPage || hasPerPage:
		if !hasPage || page < 1 {
			page = 1
		}
		if !hasPerPage || perPage == 0 {
			perPage = q.limits.DefaultPageSize
		}
		spec.Offset = saturatingMul(page-1, perPage)
		spec.Limit = perPage

	case params.Range != "":
		if start, end, ok := ParseRange(params.Range); ok {
			spec.Offset = start
			spec.Limit = RangeLimit(start, end)
		} else {
			q.logger.Debug("ignoring malformed range", "range", truncateForLog(params.Range))
		}
	}

	return q.capPage(spec)
}

func (q *Compiler) capPage(spec types.PageSpec) types.PageSpec {
	if spec.Limit > q.limits.MaxPageSize {
		q.logger.Debug("limit capped to maximum page size",
			"limit", spec.Limit, "maxPageSize", q.limits.MaxPageSize)
		spec.Limit = q.limits.MaxPageSize
	}
	if spec.Offset > q.limits.MaxOffset {
		q.logger.Debug("offset capped to maximum offset",
			"offset", spec.Offset, "maxOffset", q.limits.MaxOffset)
		spec.Offset = q.limits.MaxOffset
	}
	return spec
}

// ParseRange parses an inclusive [start, end] range. Bounds may be numbers or
// numeric strings. Negative bounds and end < start are rejected.
func ParseRange(raw string) (start, end uint64, ok bool) {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	var bounds []interface{}
	if err := decoder.Decode(&bounds); err != nil || len(bounds) != 2 {
		return 0, 0, false
	}

	if start, ok = parseBound(bounds[0]); !ok {
		return 0, 0, false
	}
	if end, ok = parseBound(bounds[1]); !ok {
		return 0, 0, false
	}
	if end < start {
		return 0, 0, false
	}
	return start, end, true
}

// RangeLimit is the number of rows in the inclusive range [start, end].
func RangeLimit(start, end uint64) uint64 {
	return saturatingAdd(end-start, 1)
}

func parseBound(raw interface{}) (uint64, bool) {
	switch v := raw.(type) {
	case json.Number:
		return parseCount(v.String())
	case string:
		return parseCount(v)
	}
	return 0, false
}

// parseCount parses a non-negative decimal integer. Values beyond the range
// of uint64 saturate. Anything else, negative numbers included, is absent.
func parseCount(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return math.MaxUint64, true
		}
		return 0, false
	}
	return n, true
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
