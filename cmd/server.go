package cmd

import (
	"errors"
	"fmt"
	log2 "log"
	"net/http"
	"os"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/datastax/data-api-query/config"
	"github.com/datastax/data-api-query/dialect"
	"github.com/datastax/data-api-query/endpoint"
	"github.com/datastax/data-api-query/graphql"
	"github.com/datastax/data-api-query/log"
	"github.com/datastax/data-api-query/schema"
)

const defaultGraphQLPath = "/graphql"
const defaultRESTPath = "/rest"
const defaultGraphQLPlaygroundPath = "/graphql-playground"

// Environment variables prefixed with "DATA_API_" can override settings e.g. "DATA_API_DSN"
const envVarPrefix = "data_api"

var cfgFile string
var logger log.Logger

var serverCmd = &cobra.Command{
	Use:   os.Args[0] + " --dialect [DIALECT] --dsn [DSN] --config [FILE] [OPTIONS]",
	Short: "Filtered, sorted and paginated GraphQL and REST endpoints over SQL tables",
	Args: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("dsn") == "" {
			return errors.New("dsn is required")
		}

		if _, err := dialect.Lookup(viper.GetString("dialect")); err != nil {
			return err
		}

		startGraphQL := viper.GetBool("start-graphql")
		startREST := viper.GetBool("start-rest")
		if !startGraphQL && !startREST {
			return errors.New("at least one endpoint type should be started")
		}
		if startGraphQL && startREST && viper.GetString("graphql-path") == viper.GetString("rest-path") {
			return errors.New("graphql and rest paths can not be the same")
		}

		return nil
	},
}

func init() {
	// Run is assigned here rather than in the literal above to avoid an
	// initialization cycle (Run -> createEndpoint -> readLimits -> serverCmd).
	serverCmd.Run = func(cmd *cobra.Command, args []string) {
		endpoint := createEndpoint()
		defer endpoint.Close()

		router := createRouter()
		endpointNames := make([]string, 0, 2)
		if viper.GetBool("start-graphql") {
			addGraphQLRoutes(router, endpoint)
			endpointNames = append(endpointNames, "GraphQL")
		}
		if viper.GetBool("start-rest") {
			addRESTRoutes(router, endpoint)
			endpointNames = append(endpointNames, "REST")
		}

		listenAndServe(router, viper.GetInt("port"), strings.Join(endpointNames, "/"))
	}
}

// Execute starts the GraphQL/REST endpoints
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := serverCmd.PersistentFlags()

	// General endpoint flags
	flags.StringVarP(&cfgFile, "config", "c", "", "config file declaring the resources")
	flags.StringP("dialect", "d", string(dialect.Postgres), "database dialect. options: postgres,sqlite")
	flags.String("dsn", "", "data source name used to connect to the database")
	flags.Int("port", 8080, "endpoint port")
	flags.Bool("request-logging", false, "enable request logging")

	// Query limits
	flags.Uint64("max-page-size", config.DefaultMaxPageSize, "maximum number of rows returned by a single request")
	flags.Uint64("default-page-size", config.DefaultPageSize, "number of rows returned when no page size is requested")
	flags.Uint64("max-offset", config.DefaultMaxOffset, "maximum offset of a page")

	// Endpoint specific flags
	flags.Bool("start-graphql", true, "start the GraphQL endpoint")
	flags.String("graphql-path", defaultGraphQLPath, "GraphQL endpoint path")
	flags.Bool("graphql-playground", true, "expose a GraphQL playground route")
	flags.String("graphql-playground-path", defaultGraphQLPlaygroundPath, "path for the GraphQL playground static file")
	flags.Bool("start-rest", true, "start the REST endpoint")
	flags.String("rest-path", defaultRESTPath, "REST endpoint path prefix")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := serverCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createEndpoint() *endpoint.DataEndpoint {
	d, err := dialect.Lookup(viper.GetString("dialect"))
	if err != nil {
		logger.Fatal("invalid dialect", "error", err)
	}

	resources, err := schema.DecodeDefinitions(viper.Get("resources"))
	if err != nil {
		logger.Fatal("invalid resources", "error", err)
	}
	if len(resources) == 0 {
		logger.Warn("no resources declared, only empty endpoints will be served")
	}

	cfg := endpoint.NewEndpointConfigWithLogger(logger, d, viper.GetString("dsn"))
	cfg.
		WithLimits(readLimits()).
		WithResources(resources...)

	endpoint, err := cfg.NewEndpoint()
	if err != nil {
		logger.Fatal("unable create new endpoint",
			"error", err)
	}

	logger.Info("serving resources", "resources", endpoint.Resources())
	return endpoint
}

// readLimits reads the "limits" section of the config file. Flags set on the command line take precedence.
func readLimits() config.Limits {
	flags := serverCmd.PersistentFlags()
	var limits config.Limits
	if err := viper.UnmarshalKey("limits", &limits); err != nil {
		logger.Fatal("invalid limits", "error", err)
	}

	for key, target := range map[string]*uint64{
		"max-page-size":     &limits.MaxPageSize,
		"default-page-size": &limits.DefaultPageSize,
		"max-offset":        &limits.MaxOffset,
	} {
		if flags.Changed(key) || *target == 0 {
			*target = viper.GetUint64(key)
		}
	}

	limits = limits.OrDefault()
	if err := limits.Validate(); err != nil {
		logger.Fatal("invalid limits", "error", err)
	}
	return limits
}

func addGraphQLRoutes(router *httprouter.Router, endpoint *endpoint.DataEndpoint) {
	routes, err := endpoint.RoutesGraphQL(viper.GetString("graphql-path"))
	if err != nil {
		logger.Fatal("unable to generate graphql routes",
			"error", err)
	}

	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}

	if viper.GetBool("graphql-playground") {
		playgroundPath := viper.GetString("graphql-playground-path")
		hostAndPort := fmt.Sprintf("http://localhost:%d", viper.GetInt("port"))
		logger.Info("get started by visiting the GraphQL playground",
			"url", hostAndPort+playgroundPath)
		router.GET(playgroundPath, graphql.GetPlaygroundHandle(hostAndPort+viper.GetString("graphql-path")))
	}
}

func addRESTRoutes(router *httprouter.Router, endpoint *endpoint.DataEndpoint) {
	for _, route := range endpoint.RoutesRest(viper.GetString("rest-path")) {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
}

func maybeAddRequestLogging(handler http.Handler) http.Handler {
	if viper.GetBool("request-logging") {
		handler = log.NewLoggingHandler(handler, logger)
	}
	return handler
}

func initialize() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			logger.Fatal("unable to read config file",
				"file", cfgFile,
				"error", err)
		}
		logger.Info("using config file",
			"file", viper.ConfigFileUsed())
	}
}

func createRouter() *httprouter.Router {
	return httprouter.New()
}

func listenAndServe(handler http.Handler, port int, endpointNames string) {
	logger.Info("server listening",
		"port", port,
		"type", endpointNames)
	err := http.ListenAndServe(fmt.Sprintf(":%d", port), maybeAddRequestLogging(handler))
	if err != nil {
		logger.Fatal("unable to start server",
			"port", port,
			"error", err)
	}
}
