package query

import (
	"strings"

	c "github.com/datastax/data-api-query/condition"
	"github.com/datastax/data-api-query/dialect"
	"github.com/datastax/data-api-query/schema"
)

// SimilarityThreshold is the minimum trigram similarity for a row to match a
// free-text query on dialects that support it.
const SimilarityThreshold = 0.1

const fulltextFallbackNotice = "fulltext-substring-fallback"

// search builds the condition for the reserved "q" key.
func (q *Compiler) search(desc *schema.Descriptor, d dialect.Dialect, raw interface{}) c.Condition {
	text, ok := raw.(string)
	if !ok {
		q.logger.Debug("ignoring non string search query", "resource", desc.Name())
		return nil
	}

	query := normalizeSearchQuery(text, q.limits.MaxValueLength)
	if query == "" {
		return nil
	}

	q.stats.searches.Inc()
	return q.FulltextCondition(desc, d, query)
}

// FulltextCondition selects the free-text strategy for the dialect. With
// trigram similarity available the query matches either as a substring of
// the concatenated full-text columns or by similarity. Otherwise only the
// substring match is used. Resources without full-text columns fall back to
// a substring match over each searchable column.
func (q *Compiler) FulltextCondition(desc *schema.Descriptor, d dialect.Dialect, query string) c.Condition {
	names := desc.FulltextSearchableColumns()
	if len(names) == 0 {
		return q.searchableFallback(desc, query)
	}

	columns := make([]c.Column, len(names))
	for i, name := range names {
		columns[i] = c.Column{Name: name}
	}
	concat := c.Concat{Columns: columns}

	if d.SupportsSimilarity() {
		return c.Disjunction(
			c.Contains{Left: concat, Value: query},
			c.Similar{Left: concat, Value: query, Threshold: SimilarityThreshold},
		)
	}

	if len(names) > q.limits.FulltextWarnColumns {
		q.notices.Do(fulltextFallbackNotice, func() {
			q.logger.Warn("full-text search is using substring matching over many columns, consider a dedicated search engine",
				"resource", desc.Name(), "dialect", d.Tag(), "columns", len(names))
		})
	}

	return c.Contains{Left: concat, Value: query}
}

func (q *Compiler) searchableFallback(desc *schema.Descriptor, query string) c.Condition {
	names := desc.SearchableColumns()
	if len(names) == 0 {
		q.logger.Debug("ignoring search query, resource has no searchable columns", "resource", desc.Name())
		return nil
	}

	conditions := make([]c.Condition, 0, len(names))
	for _, name := range names {
		caps, _ := desc.Capabilities(name)
		conditions = append(conditions, c.Contains{Left: column(name, caps), Value: query})
	}
	return c.Disjunction(conditions...)
}

// normalizeSearchQuery trims the query and truncates it to maxLength characters.
func normalizeSearchQuery(text string, maxLength int) string {
	text = strings.TrimSpace(text)
	if maxLength <= 0 {
		return text
	}

	count := 0
	for i := range text {
		if count == maxLength {
			return strings.TrimSpace(text[:i])
		}
		count++
	}
	return text
}
