package graphql

import (
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const playgroundVersion = "1.7.20"

var playgroundTemplate = template.Must(template.New("playground").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="user-scalable=no, initial-scale=1.0, minimum-scale=1.0, maximum-scale=1.0, minimal-ui">
  <title>GraphQL Playground</title>
  <link rel="stylesheet" href="//cdn.jsdelivr.net/npm/graphql-playground-react@{{.Version}}/build/static/css/index.css"/>
  <link rel="shortcut icon" href="//cdn.jsdelivr.net/npm/graphql-playground-react@{{.Version}}/build/favicon.png"/>
  <script src="//cdn.jsdelivr.net/npm/graphql-playground-react@{{.Version}}/build/static/js/middleware.js"></script>
</head>
<body>
  <div id="root">Loading GraphQL Playground</div>
  <script>window.addEventListener('load', function () {
      GraphQLPlayground.init(document.getElementById('root'), {endpoint: {{.Endpoint}}})
    })</script>
</body>
</html>
`))

// GetPlaygroundHandle serves a GraphQL playground querying defaultEndpointUrl.
func GetPlaygroundHandle(defaultEndpointUrl string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := playgroundTemplate.Execute(w, struct {
			Version  string
			Endpoint string
		}{playgroundVersion, defaultEndpointUrl})
		if err != nil {
			http.Error(w, "unable to render playground", http.StatusInternalServerError)
		}
	}
}
