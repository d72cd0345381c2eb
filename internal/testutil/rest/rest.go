package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"reflect"
	"regexp"
	"strings"

	"github.com/julienschmidt/httprouter"
	. "github.com/onsi/gomega"

	"github.com/datastax/data-api-query/rest/models"
	"github.com/datastax/data-api-query/types"
)

const Prefix = "/rest"

func ExecuteGet(routes []types.Route, routeFormat string, responsePtr interface{}, values ...interface{}) int {
	code, _ := execute(routes, routeFormat, nil, responsePtr, values...)
	return code
}

// ExecuteGetWithQuery performs a GET request with the provided query string and returns the status code and
// the response headers.
func ExecuteGetWithQuery(
	routes []types.Route,
	routeFormat string,
	query url.Values,
	responsePtr interface{},
	values ...interface{},
) (int, http.Header) {
	return execute(routes, routeFormat, query, responsePtr, values...)
}

// ExecuteGetRowIds performs a GET request on the rows of a resource and returns the identifiers of the rows, in
// response order
func ExecuteGetRowIds(routes []types.Route, routeFormat string, query url.Values, values ...interface{}) []string {
	var response models.Rows
	code, _ := execute(routes, routeFormat, query, &response, values...)
	Expect(code).To(Equal(http.StatusOK))
	ids := make([]string, 0, len(response.Rows))
	for _, row := range response.Rows {
		ids = append(ids, fmt.Sprint(row["id"]))
	}
	return ids
}

func execute(
	routes []types.Route,
	routeFormat string,
	query url.Values,
	responsePtr interface{},
	values ...interface{},
) (int, http.Header) {
	rv := reflect.ValueOf(responsePtr)
	if responsePtr != nil && rv.Kind() != reflect.Ptr {
		panic("Provided value should be a pointer or nil")
	}

	target := path.Join(Prefix, fmt.Sprintf(routeFormat, values...))
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	r := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	route := lookupRoute(routes, http.MethodGet, routeFormat)

	// Use default router for params to be populated
	router := httprouter.New()
	router.Handler(route.Method, route.Pattern, route.Handler)
	router.ServeHTTP(w, r)

	if w.Code < http.StatusOK || w.Code > http.StatusIMUsed {
		if responsePtr == nil {
			return w.Code, w.Header()
		}
		if _, ok := responsePtr.(*models.ModelError); !ok {
			panic(fmt.Sprintf("unexpected http error %d: %s", w.Code, w.Body))
		}
	}

	if responsePtr != nil {
		bodyString := w.Body.String()
		err := json.NewDecoder(bytes.NewBufferString(bodyString)).Decode(responsePtr)
		Expect(err).ToNot(HaveOccurred(),
			fmt.Sprintf("Error decoding response with code %d and body: %s", w.Code, bodyString))
	}

	return w.Code, w.Header()
}

func lookupRoute(routes []types.Route, method, format string) types.Route {
	// Word tokens for parameters
	regexStr := strings.Replace(format, `%s`, `[\w:{}]+`, -1)
	regexStr += `$`

	re := regexp.MustCompile(regexStr)
	for _, route := range routes {
		if re.MatchString(route.Pattern) && route.Method == method {
			return route
		}
	}

	panic("Route not found")
}
