// Package gql contains helpers to execute and decode GraphQL requests in tests.
package gql

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"

	. "github.com/onsi/gomega"

	"github.com/datastax/data-api-query/graphql"
	"github.com/datastax/data-api-query/types"
)

type ResponseBody struct {
	Data   map[string]interface{} `json:"data"`
	Errors []ErrorEntry           `json:"errors"`
}

type ErrorEntry struct {
	Message string   `json:"message"`
	Path    []string `json:"path"`
}

const (
	getIndex  = 0
	postIndex = 1
	host      = "127.0.0.1"
)

func DecodeResponse(buffer *bytes.Buffer) ResponseBody {
	var response ResponseBody
	err := json.NewDecoder(buffer).Decode(&response)
	Expect(err).ToNot(HaveOccurred())
	return response
}

func DecodeData(buffer *bytes.Buffer, key string) map[string]interface{} {
	response := DecodeResponse(buffer)
	Expect(response.Errors).To(HaveLen(0))
	value, found := response.Data[key]
	if !found {
		panic(fmt.Sprintf("%s key not in response: %v", key, response))
	}
	return value.(map[string]interface{})
}

// DecodeRowIds returns the id of every row returned for key, in response order.
func DecodeRowIds(buffer *bytes.Buffer, key string) []string {
	rows := DecodeData(buffer, key)["rows"].([]interface{})
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, fmt.Sprint(row.(map[string]interface{})["id"]))
	}
	return ids
}

func ExecutePost(routes []types.Route, target string, body string) *bytes.Buffer {
	return ExecutePostWithVariables(routes, target, body, nil)
}

func ExecutePostWithVariables(routes []types.Route, target string, body string, variables map[string]interface{}) *bytes.Buffer {
	b, err := json.Marshal(graphql.RequestBody{Query: body, Variables: variables})
	Expect(err).ToNot(HaveOccurred())
	r := httptest.NewRequest(http.MethodPost, targetUrl(target), bytes.NewReader(b))
	w := httptest.NewRecorder()
	routes[postIndex].Handler.ServeHTTP(w, r)
	Expect(w.Code).To(Equal(http.StatusOK))
	return w.Body
}

func ExecuteGet(routes []types.Route, target string, query string) *bytes.Buffer {
	r := httptest.NewRequest(http.MethodGet, targetUrl(target), nil)
	q := r.URL.Query()
	q.Set("query", query)
	r.URL.RawQuery = q.Encode()
	w := httptest.NewRecorder()
	routes[getIndex].Handler.ServeHTTP(w, r)
	Expect(w.Code).To(Equal(http.StatusOK))
	return w.Body
}

func ExpectQueryToReturnError(routes []types.Route, query string, expectedMessage string) {
	body := ExecutePost(routes, "/graphql", query)
	// GraphQL errors are reported in the body, the HTTP status code is still 200
	response := DecodeResponse(body)
	ExpectError(response, expectedMessage)
}

func ExpectError(response ResponseBody, expectedMessage string) {
	Expect(response.Errors).To(HaveLen(1))
	Expect(response.Errors[0].Message).To(ContainSubstring(expectedMessage))
}

func targetUrl(target string) string {
	return fmt.Sprintf("http://%s", path.Join(host, target))
}
