package endpoint

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/datastax/data-api-query/internal/testutil"
	"github.com/datastax/data-api-query/internal/testutil/gql"
	"github.com/datastax/data-api-query/types"
)

const tasksQuery = `query($filter: String, $sort: String, $perPage: Int) {
  tasks(filter: $filter, sort: $sort, perPage: $perPage) {
    total
    rows
  }
}`

var _ = Describe("DataEndpoint", func() {
	var routes []types.Route

	BeforeEach(func() {
		var err error
		routes, err = endpoint.RoutesGraphQL("/graphql")
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("RoutesGraphQL", func() {
		It("Should filter rows", func() {
			buffer := gql.ExecutePostWithVariables(routes, "/graphql", tasksQuery, map[string]interface{}{
				"filter": `{"completed":true}`,
			})
			Expect(gql.DecodeRowIds(buffer, "tasks")).To(Equal([]string{testutil.TaskReport, testutil.TaskBugfix}))
		})

		It("Should report the total ignoring pagination", func() {
			buffer := gql.ExecutePostWithVariables(routes, "/graphql", tasksQuery, map[string]interface{}{
				"sort":    `["title","DESC"]`,
				"perPage": 2,
			})
			data := gql.DecodeData(buffer, "tasks")
			Expect(data["total"]).To(Equal(float64(5)))
			Expect(data["rows"]).To(HaveLen(2))
		})

		It("Should search across full-text columns", func() {
			buffer := gql.ExecutePostWithVariables(routes, "/graphql", tasksQuery, map[string]interface{}{
				"filter": `{"q":"50%"}`,
			})
			Expect(gql.DecodeRowIds(buffer, "tasks")).To(Equal([]string{testutil.TaskReview}))
		})

		It("Should support GET requests", func() {
			buffer := gql.ExecuteGet(routes, "/graphql", `{ tasks(perPage: 1) { total } }`)
			Expect(gql.DecodeData(buffer, "tasks")["total"]).To(Equal(float64(5)))
		})

		It("Should expose compiler statistics", func() {
			buffer := gql.ExecutePost(routes, "/graphql", `{ stats { compiled searches } }`)
			Expect(gql.DecodeData(buffer, "stats")["compiled"]).To(BeNumerically(">=", 1))
		})

		It("Should reject unknown fields", func() {
			gql.ExpectQueryToReturnError(routes, `{ projects { total } }`, "projects")
		})
	})
})
