// Package graphql carries the request pipeline of the endpoint: it parses
// the incoming operation, validates it (standard rules plus a depth cap),
// executes it against the composed schema and shapes the response envelope.
package graphql

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gql "github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	"go.uber.org/zap"

	"github.com/mlukashov/usergraph/internal/core/logger"
)

func log() *zap.Logger {
	return logger.Named("api.graphql")
}

// request is the JSON body of a POST operation.
type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// response is the reply envelope. A request that fails before execution
// carries only errors; an executed request always carries data, with errors
// alongside when resolvers failed.
type response struct {
	Data   interface{}                `json:"data,omitempty"`
	Errors []gqlerrors.FormattedError `json:"errors,omitempty"`
}

// Handler serves the endpoint over POST. The pipeline is
// parse, validate (standard rules plus the depth cap), execute; a request
// rejected before execution gets an errors-only envelope with HTTP 200, so
// transport status stays orthogonal to operation outcome.
func Handler(schema gql.Schema, depthLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response{
				Errors: []gqlerrors.FormattedError{
					{Message: "malformed request body: " + err.Error()},
				},
			})
			return
		}
		if req.Query == "" {
			c.JSON(http.StatusBadRequest, response{
				Errors: []gqlerrors.FormattedError{
					{Message: "request body must carry a query"},
				},
			})
			return
		}

		src := source.NewSource(&source.Source{
			Body: []byte(req.Query),
			Name: "GraphQL request",
		})
		doc, err := parser.Parse(parser.ParseParams{Source: src})
		if err != nil {
			c.JSON(http.StatusOK, response{
				Errors: gqlerrors.FormatErrors(err),
			})
			return
		}

		validation := gql.ValidateDocument(&schema, doc, nil)
		errors := append([]gqlerrors.FormattedError{}, validation.Errors...)
		errors = append(errors, checkDepth(doc, src, depthLimit)...)
		if len(errors) > 0 {
			log().Debug("operation rejected before execution",
				zap.Int("errors", len(errors)))
			c.JSON(http.StatusOK, response{Errors: errors})
			return
		}

		result := gql.Execute(gql.ExecuteParams{
			Schema:        schema,
			AST:           doc,
			Args:          req.Variables,
			OperationName: req.OperationName,
			Context:       c.Request.Context(),
		})
		if len(result.Errors) > 0 {
			log().Debug("operation finished with errors",
				zap.Int("errors", len(result.Errors)))
		}
		c.JSON(http.StatusOK, response{
			Data:   result.Data,
			Errors: result.Errors,
		})
	}
}
