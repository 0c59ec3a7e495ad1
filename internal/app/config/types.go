package config

type DriverConfig struct {
	MongoDB  MongoDB
	Redis    Redis
	RabbitMQ RabbitMQ
	Minio    Minio
	Logger   Logger
}

type MongoDB struct {
	Host     string
	Port     string
	DbName   string
	Username string
	Password string
}

type Redis struct {
	Host     string
	Port     string
	Password string
}

type RabbitMQ struct {
	Host     string
	Port     string
	Username string
	Password string
}

type Minio struct {
	Host       string
	Port       string
	Username   string
	Password   string
	BucketName string
	UseSSL     bool
}

type Logger struct {
	Level               string
	OutputFileName      string
	OutputErrorFileName string
}

type InternalConfig struct {
	App   App
	JWT   JWT
	Stats Stats
}

type App struct {
	Env                      string
	Port                     string
	Version                  string
	EndpointPrefix           string
	MaxRequests              int
	ShutdownTimeout          int
	NotificationQueue        string
	MailerRatePerMinute      int
	SignatureURLExpiryMinute int
}

type JWT struct {
	Secret        string
	ExpTimeInHour int
}

type Stats struct {
	OpportunityThresholdDays int
}
