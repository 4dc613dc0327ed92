package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnection_success"

	ActionDatabaseTransactionFailed = "database_transaction_failed"
	ActionExternalServiceFailed     = "external_service_failed"

	ActionDatasetLoaded       = "dataset_loaded"
	ActionDatasetReloadFailed = "dataset_reload_failed"
	ActionRemoteFallback      = "remote_answer_fallback"
	ActionSessionExpired      = "session_expired"
	ActionCacheFailed         = "summary_cache_failed"
)
