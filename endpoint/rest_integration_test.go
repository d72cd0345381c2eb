package endpoint

import (
	"net/http"
	"net/url"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/datastax/data-api-query/internal/testutil"
	"github.com/datastax/data-api-query/internal/testutil/rest"
	e "github.com/datastax/data-api-query/rest/endpoint/v1"
	"github.com/datastax/data-api-query/rest/models"
	"github.com/datastax/data-api-query/types"
)

var _ = Describe("DataEndpoint", func() {
	var routes []types.Route

	BeforeEach(func() {
		routes = endpoint.RoutesRest(rest.Prefix)
	})

	Describe("RoutesRest", func() {
		Context("GetResources", func() {
			It("Should describe the registered resources", func() {
				var response []models.Resource
				code := rest.ExecuteGet(routes, e.ResourcesPathFormat, &response)
				Expect(code).To(Equal(http.StatusOK))
				Expect(response).To(HaveLen(1))
				Expect(response[0].Name).To(Equal("tasks"))
				Expect(response[0].IdentityColumn).To(Equal("id"))

				columns := map[string]models.Column{}
				for _, col := range response[0].Columns {
					columns[col.Name] = col
				}
				Expect(columns["title"].Fulltext).To(BeTrue())
				Expect(columns["status"].Kind).To(Equal("enum"))
				Expect(columns["secret"].Filterable).To(BeFalse())
			})
		})

		Context("GetRows", func() {
			It("Should return every row without a filter", func() {
				ids := rest.ExecuteGetRowIds(routes, e.RowsPathFormat, nil, "tasks")
				Expect(ids).To(Equal(testutil.AllTasks))
			})

			It("Should apply range filters", func() {
				ids := rest.ExecuteGetRowIds(routes, e.RowsPathFormat,
					url.Values{"filter": {`{"score_gte":50}`}}, "tasks")
				Expect(ids).To(Equal([]string{testutil.TaskReport, testutil.TaskReview, testutil.TaskBugfix}))
			})

			It("Should ignore fields that are not declared", func() {
				ids := rest.ExecuteGetRowIds(routes, e.RowsPathFormat,
					url.Values{"filter": {`{"completed":true,"nonexistent":"x"}`}}, "tasks")
				Expect(ids).To(Equal([]string{testutil.TaskReport, testutil.TaskBugfix}))
			})

			It("Should ignore columns that are not filterable", func() {
				ids := rest.ExecuteGetRowIds(routes, e.RowsPathFormat,
					url.Values{"filter": {`{"secret":"s1"}`}}, "tasks")
				Expect(ids).To(Equal(testutil.AllTasks))
			})

			It("Should sort and paginate", func() {
				var response models.Rows
				code, headers := rest.ExecuteGetWithQuery(routes, e.RowsPathFormat, url.Values{
					"sort":  {`["score","DESC"]`},
					"range": {`[1,2]`},
				}, &response, "tasks")
				Expect(code).To(Equal(http.StatusOK))
				Expect(response.Count).To(Equal(2))
				Expect(response.Total).To(Equal(uint64(5)))
				Expect(response.Rows[0]["id"]).To(Equal(testutil.TaskBugfix))
				Expect(response.Rows[1]["id"]).To(Equal(testutil.TaskReview))
				Expect(headers.Get("Content-Range")).To(Equal("tasks 1-2/5"))
				Expect(headers.Get("X-Total-Count")).To(Equal("5"))
			})

			It("Should report an empty page", func() {
				var response models.Rows
				code, headers := rest.ExecuteGetWithQuery(routes, e.RowsPathFormat, url.Values{
					"filter": {`{"completed":true}`},
					"page":   {"2"},
				}, &response, "tasks")
				Expect(code).To(Equal(http.StatusOK))
				Expect(response.Rows).To(BeEmpty())
				Expect(headers.Get("Content-Range")).To(Equal("tasks */2"))
			})

			It("Should convert values to their JSON form", func() {
				var response models.Rows
				rest.ExecuteGetWithQuery(routes, e.RowsPathFormat,
					url.Values{"filter": {`{"id":"` + testutil.TaskBugfix + `"}`}}, &response, "tasks")
				Expect(response.Rows).To(HaveLen(1))
				Expect(response.Rows[0]["completed"]).To(Equal(true))
				Expect(response.Rows[0]["score"]).To(Equal(65.5))
				Expect(response.Rows[0]["description"]).To(BeNil())
			})

			It("Should return not found for an unknown resource", func() {
				var response models.ModelError
				code := rest.ExecuteGet(routes, e.RowsPathFormat, &response, "projects")
				Expect(code).To(Equal(http.StatusNotFound))
				Expect(response.Code).To(Equal(http.StatusNotFound))
				Expect(response.Description).To(ContainSubstring("projects"))
			})
		})

		Context("GetRow", func() {
			It("Should return a single row", func() {
				var response models.Rows
				code := rest.ExecuteGet(routes, e.RowSinglePathFormat, &response, "tasks", testutil.TaskSprint)
				Expect(code).To(Equal(http.StatusOK))
				Expect(response.Rows).To(HaveLen(1))
				Expect(response.Rows[0]["title"]).To(Equal("Plan sprint"))
			})

			It("Should return not found for a missing row", func() {
				var response models.ModelError
				code := rest.ExecuteGet(routes, e.RowSinglePathFormat, &response,
					"tasks", "b0000000-0000-4000-8000-000000000001")
				Expect(code).To(Equal(http.StatusNotFound))
			})

			It("Should return not found for a malformed identifier", func() {
				var response models.ModelError
				code := rest.ExecuteGet(routes, e.RowSinglePathFormat, &response, "tasks", "not_a_uuid")
				Expect(code).To(Equal(http.StatusNotFound))
			})
		})

		Context("GetStats", func() {
			It("Should count compiled filters", func() {
				rest.ExecuteGetRowIds(routes, e.RowsPathFormat, url.Values{"filter": {`{"completed":true}`}}, "tasks")

				var response map[string]float64
				code := rest.ExecuteGet(routes, e.StatsPathFormat, &response)
				Expect(code).To(Equal(http.StatusOK))
				Expect(response["compiled"]).To(BeNumerically(">=", 1))
			})
		})
	})
})
