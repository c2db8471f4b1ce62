package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyLogDir string = "TRINETRA_LOG_DIR"

	EnvPrefix string = "TRINETRA"

	DefaultAlertType string = "crowd_analysis"

	HeaderClientID string = "X-Client-ID"

	LoggerNameAlertCore           string = "alert_core"
	LoggerNameRestfulServer       string = "restful_server"
	LoggerNameGrpcServer          string = "grpc_server"
	LoggerFieldCategory           string = "category"
	LoggerCategoryAlertStore      string = "store"
	LoggerCategoryAlertClassifier string = "classifier"
	LoggerCategoryAlertWatch      string = "watch"
)
