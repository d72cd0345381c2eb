package endpoint

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/datastax/data-api-query/db"
	"github.com/datastax/data-api-query/query"
	e "github.com/datastax/data-api-query/rest/errors"
	m "github.com/datastax/data-api-query/rest/models"
	"github.com/datastax/data-api-query/schema"
	"github.com/datastax/data-api-query/types"
)

const (
	contentRangeHeader = "Content-Range"
	totalCountHeader   = "X-Total-Count"
)

func (s *routeList) GetResources(w http.ResponseWriter, r *http.Request) {
	names := s.registry.Names()
	resources := make([]m.Resource, 0, len(names))
	for _, name := range names {
		desc, _ := s.registry.Lookup(name)
		resources = append(resources, descriptorToResource(desc))
	}

	RespondJSONObjectWithCode(w, http.StatusOK, resources)
}

// GetRows lists the rows of a resource. Filter, sort and pagination come
// from the query string and are never rejected: anything unusable is dropped.
func (s *routeList) GetRows(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	desc, err := s.lookup(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	compiled := s.compiler.Compile(r.URL.Query(), desc, s.dbClient.Dialect())

	result, err := s.dbClient.Select(ctx, &db.SelectInfo{
		Table:   desc.Table(),
		Columns: desc.Columns(),
		Where:   compiled.Condition,
		OrderBy: compiled.Sort,
		Page:    compiled.Page,
	})
	if err != nil {
		s.logger.Error("unable to select rows", "resource", desc.Name(), "error", err)
		s.respondWithError(w, e.NewInternalError("unable to select rows", err))
		return
	}

	total, err := s.dbClient.Count(ctx, &db.CountInfo{Table: desc.Table(), Where: compiled.Condition})
	if err != nil {
		s.logger.Error("unable to count rows", "resource", desc.Name(), "error", err)
		s.respondWithError(w, e.NewInternalError("unable to count rows", err))
		return
	}

	rows := convertRows(desc, result.Values())
	w.Header().Set(contentRangeHeader, contentRange(desc.Name(), compiled.Page, len(rows), total))
	w.Header().Set(totalCountHeader, strconv.FormatUint(total, 10))
	w.Header().Set("Access-Control-Expose-Headers", contentRangeHeader+", "+totalCountHeader)

	RespondJSONObjectWithCode(w, http.StatusOK, m.Rows{
		Rows:  rows,
		Count: len(rows),
		Total: total,
	})
}

func (s *routeList) GetRow(w http.ResponseWriter, r *http.Request) {
	desc, err := s.lookup(r)
	if err != nil {
		s.respondWithError(w, err)
		return
	}

	rowIdentifier := s.params(r, "rowIdentifier")
	where, ok := query.IdentityCondition(desc, rowIdentifier)
	if !ok {
		s.respondWithError(w, e.NewNotFoundError(fmt.Sprintf("no row found for identifier %s", rowIdentifier)))
		return
	}

	result, err := s.dbClient.Select(r.Context(), &db.SelectInfo{
		Table:   desc.Table(),
		Columns: desc.Columns(),
		Where:   where,
		Page:    types.PageSpec{Limit: 1},
	})
	if err != nil {
		s.logger.Error("unable to select row", "resource", desc.Name(), "error", err)
		s.respondWithError(w, e.NewInternalError("unable to select row", err))
		return
	}

	rows := convertRows(desc, result.Values())
	if len(rows) == 0 {
		s.respondWithError(w, e.NewNotFoundError(fmt.Sprintf("no row found for identifier %s", rowIdentifier)))
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.Rows{
		Rows:  rows,
		Count: len(rows),
		Total: uint64(len(rows)),
	})
}

func (s *routeList) GetStats(w http.ResponseWriter, r *http.Request) {
	RespondJSONObjectWithCode(w, http.StatusOK, s.compiler.Stats())
}

func (s *routeList) lookup(r *http.Request) (*schema.Descriptor, error) {
	name := s.params(r, "resourceName")
	desc, ok := s.registry.Lookup(name)
	if !ok {
		return nil, e.NewNotFoundError(fmt.Sprintf("resource %s not found", name))
	}
	return desc, nil
}

func (s *routeList) respondWithError(w http.ResponseWriter, err error) {
	RespondWithError(w, err, e.StatusCode(err))
}

// contentRange formats the range of the returned rows as "resource start-end/total",
// or "resource */total" when the page is empty.
func contentRange(resource string, page types.PageSpec, count int, total uint64) string {
	if count == 0 {
		return fmt.Sprintf("%s */%d", resource, total)
	}
	return fmt.Sprintf("%s %d-%d/%d", resource, page.Offset, page.Offset+uint64(count)-1, total)
}

func descriptorToResource(desc *schema.Descriptor) m.Resource {
	resource := m.Resource{
		Name:           desc.Name(),
		IdentityColumn: desc.IdentityColumn(),
		DefaultSort:    desc.DefaultSortColumn(),
	}

	for _, name := range desc.Columns() {
		caps, _ := desc.Capabilities(name)
		resource.Columns = append(resource.Columns, m.Column{
			Name:       name,
			Kind:       caps.Kind.String(),
			Filterable: caps.Filterable,
			Sortable:   caps.Sortable,
			Fulltext:   caps.Fulltext,
			Like:       caps.Like,
		})
	}
	return resource
}
