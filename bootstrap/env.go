package bootstrap

import (
	"log"

	"github.com/spf13/viper"
)

type Env struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout int    `mapstructure:"CONTEXT_TIMEOUT"`

	MongoURI string `mapstructure:"MONGO_URI"`
	DBName   string `mapstructure:"DB_NAME"`

	JWTSecret         string `mapstructure:"JWT_SECRET"`
	PasswordResetLink string `mapstructure:"PASSWORD_RESET_LINK"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	StorageKeyID    string `mapstructure:"STORAGE_KEY_ID"`
	StorageAppKey   string `mapstructure:"STORAGE_APP_KEY"`
	StorageEndpoint string `mapstructure:"STORAGE_ENDPOINT"`
	StorageRegion   string `mapstructure:"STORAGE_REGION"`
	StorageBucket   string `mapstructure:"STORAGE_BUCKET"`
	StorageBaseURL  string `mapstructure:"STORAGE_BASE_URL"`
}

func NewEnv() *Env {
	env := Env{}
	viper.SetConfigFile(".env")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("no .env file found, reading configuration from the environment")
		viper.AutomaticEnv()
	}

	if err := viper.Unmarshal(&env); err != nil {
		log.Fatal("environment can't be loaded: ", err)
	}

	if env.ContextTimeout <= 0 {
		env.ContextTimeout = 2
	}
	if env.ServerAddress == "" {
		env.ServerAddress = ":8080"
	}
	if env.AppEnv == "development" {
		log.Println("the app is running in development env")
	}

	return &env
}
