package query

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastax/data-api-query/config"
	c "github.com/datastax/data-api-query/condition"
	"github.com/datastax/data-api-query/dialect"
	"github.com/datastax/data-api-query/internal/testutil"
	"github.com/datastax/data-api-query/schema"
	"github.com/datastax/data-api-query/types"
)

func TestCompileFilterMatchAll(t *testing.T) {
	q := newTestCompiler()
	desc := testutil.TasksDescriptor()

	inputs := []string{"", "  ", "{}", "{", "[1,2]", "null", `"text"`, `{"score":1} trailing`}
	for _, raw := range inputs {
		assert.Equal(t, c.True{}, q.CompileFilter(raw, desc, dialect.NewSQLite()), raw)
	}

	stats := q.Stats()
	assert.Equal(t, int64(len(inputs)), stats.Compiled)
	assert.Equal(t, int64(5), stats.InvalidFilters)
}

func TestCompileFilterClauses(t *testing.T) {
	score := c.Column{Name: "score"}
	completed := c.Column{Name: "completed"}

	tests := []struct {
		name     string
		filter   string
		expected c.Condition
	}{
		{"integer lower bound", `{"score_gte":50}`,
			c.Compare{Left: score, Operator: types.OpGte, Value: types.IntValue(50)}},
		{"float strict bound", `{"score_gt":50.5}`,
			c.Compare{Left: score, Operator: types.OpGt, Value: types.FloatValue(50.5)}},
		{"eq suffix", `{"score_eq":3}`,
			c.Compare{Left: score, Operator: types.OpEq, Value: types.IntValue(3)}},
		{"unknown field dropped", `{"completed":true,"nonexistent":"x"}`,
			c.Compare{Left: completed, Operator: types.OpEq, Value: types.BoolValue(true)}},
		{"boolean range degrades to equality", `{"completed_gte":true}`,
			c.Compare{Left: completed, Operator: types.OpEq, Value: types.BoolValue(true)}},
		{"boolean inequality", `{"completed_neq":false}`,
			c.Compare{Left: completed, Operator: types.OpNeq, Value: types.BoolValue(false)}},
		{"like column substring", `{"title":"rep"}`,
			c.Contains{Left: c.Column{Name: "title"}, Value: "rep"}},
		{"enum equality", `{"status":"open"}`,
			c.EnumEquals{Column: "status", Value: "open"}},
		{"enum equality with eq suffix", `{"status_eq":"open"}`,
			c.EnumEquals{Column: "status", Value: "open"}},
		{"text case-insensitive equality", `{"description":"Quarterly Numbers"}`,
			c.EqualFold{Left: c.Column{Name: "description"}, Value: "Quarterly Numbers"}},
		{"whitespace text exact equality", `{"description":"  "}`,
			c.Compare{Left: c.Column{Name: "description"}, Operator: types.OpEq, Value: types.TextValue("  ")}},
		{"text range", `{"title_lte":"m"}`,
			c.Compare{Left: c.Column{Name: "title"}, Operator: types.OpLte, Value: types.TextValue("m")}},
		{"text on numeric column", `{"score":"high"}`,
			c.EqualFold{Left: c.Column{Name: "score", AsText: true}, Value: "high"}},
		{"number on text column", `{"title":1}`,
			c.Compare{Left: c.Column{Name: "title"}, Operator: types.OpEq, Value: types.TextValue("1")}},
		{"uuid exact match", `{"id":"A0000000-0000-4000-8000-000000000001"}`,
			c.Compare{Left: c.Column{Name: "id"}, Operator: types.OpEq,
				Value: types.UUIDValue("a0000000-0000-4000-8000-000000000001")}},
		{"uuid on like column is not a substring match", `{"title":"a0000000-0000-4000-8000-000000000001"}`,
			c.Compare{Left: c.Column{Name: "title"}, Operator: types.OpEq,
				Value: types.UUIDValue("a0000000-0000-4000-8000-000000000001")}},
		{"null", `{"description":null}`, c.IsNull{Column: "description"}},
		{"null with operator dropped", `{"description_neq":null}`, c.True{}},
		{"array membership on enum", `{"status":["open","closed"]}`,
			c.In{Left: c.Column{Name: "status", AsText: true},
				Values: []types.Value{types.TextValue("open"), types.TextValue("closed")}}},
		{"empty array dropped", `{"status":[]}`, c.True{}},
		{"array without usable elements dropped", `{"status":[null,["x"],{"a":1}]}`, c.True{}},
		{"object value dropped", `{"score":{"a":1}}`, c.True{}},
		{"non filterable column dropped", `{"secret":"s1"}`, c.True{}},
		{"invalid field name dropped", `{"bad-name":1}`, c.True{}},
		{"bare suffix dropped", `{"_gte":1}`, c.True{}},
		{"identifiers", `{"ids":["` + testutil.TaskReport + `","bogus",7,"` + testutil.TaskSprint + `"]}`,
			c.In{Left: c.Column{Name: "id"}, Values: []types.Value{
				types.UUIDValue(testutil.TaskReport), types.UUIDValue(testutil.TaskSprint)}}},
		{"scalar identifier", `{"ids":"` + testutil.TaskReview + `"}`,
			c.In{Left: c.Column{Name: "id"}, Values: []types.Value{types.UUIDValue(testutil.TaskReview)}}},
		{"malformed identifiers dropped", `{"ids":["bogus"]}`, c.True{}},
		{"clauses are combined", `{"score_gte":50,"completed":true}`,
			c.And{Conditions: []c.Condition{
				c.Compare{Left: completed, Operator: types.OpEq, Value: types.BoolValue(true)},
				c.Compare{Left: score, Operator: types.OpGte, Value: types.IntValue(50)},
			}}},
	}

	desc := testutil.TasksDescriptor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newTestCompiler()
			assert.Equal(t, tt.expected, q.CompileFilter(tt.filter, desc, dialect.NewSQLite()))
		})
	}
}

func TestCompileFilterValueKindMismatch(t *testing.T) {
	def := testutil.TasksDefinition()
	def.Name = "events"
	def.Columns = append(def.Columns, schema.ColumnDefinition{Name: "due", Kind: "timestamp", Filterable: true})
	desc, err := schema.NewRegistry(nil).Register(def)
	require.NoError(t, err)

	score := c.Column{Name: "score"}
	tests := []struct {
		name     string
		filter   string
		expected c.Condition
	}{
		{"text range on float column dropped", `{"score_gte":"abc"}`, c.True{}},
		{"text inequality on uuid column dropped", `{"id_neq":"abc"}`, c.True{}},
		{"uuid on float column dropped", `{"score":"` + testutil.TaskReport + `"}`, c.True{}},
		{"boolean on float column dropped", `{"score":true}`, c.True{}},
		{"number on boolean column dropped", `{"completed":1}`, c.True{}},
		{"number on uuid column dropped", `{"id_gt":5}`, c.True{}},
		{"text array on float column dropped", `{"score":["high","low"]}`, c.True{}},
		{"malformed uuid array dropped", `{"id":["not-a-uuid"]}`, c.True{}},
		{"mismatched array elements skipped", `{"score":["high",50,2.5]}`,
			c.In{Left: score, Values: []types.Value{types.IntValue(50), types.FloatValue(2.5)}}},
		{"uuid array keeps uuids", `{"id":["bogus","` + testutil.TaskSprint + `"]}`,
			c.In{Left: c.Column{Name: "id"}, Values: []types.Value{types.UUIDValue(testutil.TaskSprint)}}},
		{"numbers in text array bound as text", `{"title":["a",1,true]}`,
			c.In{Left: c.Column{Name: "title"}, Values: []types.Value{
				types.TextValue("a"), types.TextValue("1"), types.TextValue("true")}}},
		{"boolean on text column bound as text", `{"description":false}`,
			c.Compare{Left: c.Column{Name: "description"}, Operator: types.OpEq, Value: types.TextValue("false")}},
		{"text range on timestamp column", `{"due_gte":"2024-01-01"}`,
			c.Compare{Left: c.Column{Name: "due"}, Operator: types.OpGte, Value: types.TextValue("2024-01-01")}},
		{"number on timestamp column dropped", `{"due_lt":20240101}`, c.True{}},
		{"blank text on float column cast", `{"score":" "}`,
			c.Compare{Left: c.Column{Name: "score", AsText: true}, Operator: types.OpEq, Value: types.TextValue(" ")}},
		{"valid clauses survive", `{"score_gte":"abc","score_lt":80}`,
			c.Compare{Left: score, Operator: types.OpLt, Value: types.IntValue(80)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newTestCompiler()
			cond := q.CompileFilter(tt.filter, desc, dialect.NewPostgres())
			assert.Equal(t, tt.expected, cond)

			_, _, err := dialect.Lower(dialect.NewPostgres(), cond)
			assert.NoError(t, err)
		})
	}
}

func TestCompileFilterCountsMismatchedValuesAsDropped(t *testing.T) {
	logger := &recordingLogger{}
	q := newCompilerWith(config.DefaultLimits(), logger)

	assert.Equal(t, c.True{}, q.CompileFilter(`{"score_gte":"abc","id":["x"]}`, testutil.TasksDescriptor(), dialect.NewPostgres()))
	assert.Equal(t, int64(2), q.Stats().DroppedClauses)
	assert.Equal(t, 0, logger.count("warn"))
	assert.True(t, logger.count("debug") >= 2)
}

func TestCompileFilterPercentEncoded(t *testing.T) {
	q := newTestCompiler()
	raw := url.QueryEscape(`{"score_gte":50}`)
	assert.Equal(t,
		c.Compare{Left: c.Column{Name: "score"}, Operator: types.OpGte, Value: types.IntValue(50)},
		q.CompileFilter(raw, testutil.TasksDescriptor(), dialect.NewSQLite()))
}

func TestCompileFilterSuffixedColumnName(t *testing.T) {
	def := schema.Definition{
		Name: "events",
		Columns: []schema.ColumnDefinition{
			{Name: "id", Kind: "integer", Filterable: true, Sortable: true},
			{Name: "starts_gt", Kind: "integer", Filterable: true},
		},
	}
	desc, err := schema.NewRegistry(nil).Register(def)
	require.NoError(t, err)

	cond := newTestCompiler().CompileFilter(`{"starts_gt":5}`, desc, dialect.NewSQLite())
	assert.Equal(t, c.Compare{Left: c.Column{Name: "starts_gt"}, Operator: types.OpEq, Value: types.IntValue(5)}, cond)
}

func TestCompileFilterIntegerIdentity(t *testing.T) {
	def := schema.Definition{
		Name: "notes",
		Columns: []schema.ColumnDefinition{
			{Name: "id", Kind: "integer", Filterable: true, Sortable: true},
		},
	}
	desc, err := schema.NewRegistry(nil).Register(def)
	require.NoError(t, err)

	cond := newTestCompiler().CompileFilter(`{"ids":[1,"2",3.5,4]}`, desc, dialect.NewSQLite())
	assert.Equal(t, c.In{Left: c.Column{Name: "id"}, Values: []types.Value{types.IntValue(1), types.IntValue(4)}}, cond)
}

func TestCompileFilterLengthLimits(t *testing.T) {
	logger := &recordingLogger{}
	q := newCompilerWith(config.DefaultLimits(), logger)
	desc := testutil.TasksDescriptor()

	long := strings.Repeat("x", 10001)
	assert.Equal(t, c.True{}, q.CompileFilter(`{"description":"`+long+`"}`, desc, dialect.NewSQLite()))
	assert.Equal(t, 1, logger.count("warn"))

	limit := strings.Repeat("x", 10000)
	assert.Equal(t,
		c.EqualFold{Left: c.Column{Name: "description"}, Value: limit},
		q.CompileFilter(`{"description":"`+limit+`"}`, desc, dialect.NewSQLite()))

	longName := strings.Repeat("a", 101)
	assert.Equal(t, c.True{}, q.CompileFilter(`{"`+longName+`":1}`, desc, dialect.NewSQLite()))
	assert.Equal(t, 2, logger.count("warn"))
	assert.Equal(t, int64(2), q.Stats().DroppedClauses)
}

func TestCompileFilterFulltext(t *testing.T) {
	desc := testutil.TasksDescriptor()
	concat := c.Concat{Columns: []c.Column{{Name: "title"}, {Name: "description"}}}
	completed := c.Compare{Left: c.Column{Name: "completed"}, Operator: types.OpEq, Value: types.BoolValue(true)}

	tests := []struct {
		name     string
		dialect  dialect.Dialect
		filter   string
		expected c.Condition
	}{
		{"substring without similarity", dialect.NewSQLite(), `{"q":"  report "}`,
			c.Contains{Left: concat, Value: "report"}},
		{"mysql substring", dialect.NewMySQL(), `{"q":"report"}`,
			c.Contains{Left: concat, Value: "report"}},
		{"similarity on postgres", dialect.NewPostgres(), `{"q":"report"}`,
			c.Or{Conditions: []c.Condition{
				c.Contains{Left: concat, Value: "report"},
				c.Similar{Left: concat, Value: "report", Threshold: SimilarityThreshold},
			}}},
		{"combined with other clauses", dialect.NewSQLite(), `{"completed":true,"q":"report"}`,
			c.And{Conditions: []c.Condition{c.Contains{Left: concat, Value: "report"}, completed}}},
		{"blank query ignored", dialect.NewSQLite(), `{"q":"   "}`, c.True{}},
		{"non string query ignored", dialect.NewSQLite(), `{"q":5}`, c.True{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newTestCompiler()
			assert.Equal(t, tt.expected, q.CompileFilter(tt.filter, desc, tt.dialect))
		})
	}
}

func TestCompileFilterFulltextTruncates(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxValueLength = 5
	q := newCompilerWith(limits, &recordingLogger{})

	cond := q.CompileFilter(`{"q":"abcdefgh"}`, testutil.TasksDescriptor(), dialect.NewSQLite())
	contains, ok := cond.(c.Contains)
	require.True(t, ok)
	assert.Equal(t, "abcde", contains.Value)
	assert.Equal(t, int64(1), q.Stats().Searches)
}

func TestCompileFilterSearchableFallback(t *testing.T) {
	def := schema.Definition{
		Name: "notes",
		Columns: []schema.ColumnDefinition{
			{Name: "id", Kind: "integer", Filterable: true, Sortable: true},
			{Name: "title", Kind: "text", Filterable: true},
			{Name: "status", Kind: "enum", Filterable: true},
			{Name: "code", Kind: "integer", Filterable: true, Like: true},
			{Name: "body", Kind: "text"},
		},
	}
	desc, err := schema.NewRegistry(nil).Register(def)
	require.NoError(t, err)

	cond := newTestCompiler().CompileFilter(`{"q":"abc"}`, desc, dialect.NewPostgres())
	assert.Equal(t, c.Or{Conditions: []c.Condition{
		c.Contains{Left: c.Column{Name: "code", AsText: true}, Value: "abc"},
		c.Contains{Left: c.Column{Name: "status", AsText: true}, Value: "abc"},
		c.Contains{Left: c.Column{Name: "title"}, Value: "abc"},
	}}, cond)

	bare := schema.Definition{
		Name:    "counters",
		Columns: []schema.ColumnDefinition{{Name: "id", Kind: "integer", Sortable: true}},
	}
	desc, err = schema.NewRegistry(nil).Register(bare)
	require.NoError(t, err)
	assert.Equal(t, c.True{}, newTestCompiler().CompileFilter(`{"q":"abc"}`, desc, dialect.NewSQLite()))
}

func TestFulltextFallbackWarnsOnce(t *testing.T) {
	wide := func(name string) *schema.Descriptor {
		def := schema.Definition{Name: name, Columns: []schema.ColumnDefinition{
			{Name: "id", Kind: "integer", Sortable: true},
		}}
		for _, col := range []string{"a", "b", "c", "d"} {
			def.Columns = append(def.Columns, schema.ColumnDefinition{Name: col, Kind: "text", Fulltext: true})
		}
		desc, err := schema.NewRegistry(nil).Register(def)
		require.NoError(t, err)
		return desc
	}

	logger := &recordingLogger{}
	q := newCompilerWith(config.DefaultLimits(), logger)

	q.CompileFilter(`{"q":"x"}`, testutil.TasksDescriptor(), dialect.NewSQLite())
	assert.Equal(t, 0, logger.count("warn"))

	q.CompileFilter(`{"q":"x"}`, wide("wide"), dialect.NewPostgres())
	assert.Equal(t, 0, logger.count("warn"))

	q.CompileFilter(`{"q":"x"}`, wide("wide"), dialect.NewSQLite())
	q.CompileFilter(`{"q":"y"}`, wide("wide"), dialect.NewSQLite())
	q.CompileFilter(`{"q":"z"}`, wide("other"), dialect.NewMySQL())
	assert.Equal(t, 1, logger.count("warn"))
}

func TestCompile(t *testing.T) {
	q := newTestCompiler()
	params := url.Values{}
	params.Set(ParamFilter, `{"completed":true}`)
	params.Set(ParamSortBy, "score")
	params.Set(ParamOrder, "desc")
	params.Set(ParamPage, "2")
	params.Set(ParamPerPage, "25")

	compiled := q.Compile(params, testutil.TasksDescriptor(), dialect.NewSQLite())
	assert.Equal(t, c.Compare{Left: c.Column{Name: "completed"}, Operator: types.OpEq, Value: types.BoolValue(true)},
		compiled.Condition)
	assert.Equal(t, types.SortSpec{Column: "score", Direction: types.Descending}, compiled.Sort)
	assert.Equal(t, types.PageSpec{Offset: 25, Limit: 25}, compiled.Page)
}
