package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		Logger   Logger
	}

	InternalConfig struct {
		App     App
		JWT     JWT
		Session Session
		Worker  Worker
		Minio   MinioInternal
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeout            int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
		LoginMaxAttempts           int
		LoginBlockTimeInMinute     int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}

	MinioInternal struct {
		BucketName                 string
		PhotoMaxUploadSizeInMB     int64
		PresignedUrlExpiryInMinute int
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	Session struct {
		TTLInHour int
	}

	Worker struct {
		CronSpec              string
		LeaderLockTTLInMinute int
		NoShowGraceInMinute   int
	}
)
