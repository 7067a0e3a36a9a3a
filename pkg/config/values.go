package config

const (
	// AppName is the name of the application.
	AppName = "swig"

	// DefaultConfigPath is the path of the ticket configuration file when none is provided.
	DefaultConfigPath = "config.json"

	// DefaultMonitoringPort is the port for the monitoring server when none is provided.
	DefaultMonitoringPort = "8080"
)

const (
	// EnvConfigPath is the environment variable for the path of the ticket configuration file.
	EnvConfigPath = `CONFIG_PATH`

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvGuildId is the environment variable for the guild that slash commands are registered in.
	// Commands are registered globally when it is empty.
	EnvGuildId = `GUILD_ID`

	// EnvMongoUri is the environment variable for the MongoDB URI.
	EnvMongoUri = `MONGO_URI`

	// EnvRedisAddr is the environment variable for the Redis address.
	EnvRedisAddr = `REDIS_ADDR`

	// EnvRedisPassword is the environment variable for the Redis password.
	EnvRedisPassword = `REDIS_PASSWORD`

	// EnvRedisDB is the environment variable for the Redis database number.
	EnvRedisDB = `REDIS_DB`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`
)
