package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Build    string
	AppName  string
	Debug    bool
	TestMode bool

	SecretKey []byte
	DataDir   string

	DefaultFromEmail mail.Address
	SendgridAPIKey   string

	GeminiAPIKey string
	GeminiModel  string

	RollbarToken string

	RecoveryCodeTimeout  time.Duration
	FriendRequestDelay   time.Duration
	SessionTokenLifetime time.Duration
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Study Mate")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "h2(h!x)#*c2(#yg4h^$cegm2emy-poq5-wer)enb$+57=dz&uox")
	v.SetDefault("dataDir", ".")
	v.SetDefault("defaultFromEmail", "noreply@studymate.local")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("geminiApiKey", "")
	v.SetDefault("geminiModel", "gemini-3-flash-preview")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("recoveryCodeTimeout", time.Hour)
	v.SetDefault("friendRequestDelay", 2*time.Second)
	v.SetDefault("sessionTokenLifetime", 7*24*time.Hour)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	}
	v.AutomaticEnv()

	return &Config{
		Env:                  env,
		Build:                v.GetString("build"),
		AppName:              v.GetString("appName"),
		Debug:                v.GetBool("debug"),
		TestMode:             env == "TEST",
		SecretKey:            []byte(v.GetString("secretKey")),
		DataDir:              v.GetString("dataDir"),
		DefaultFromEmail:     mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridAPIKey:       v.GetString("sendgridApiKey"),
		GeminiAPIKey:         v.GetString("geminiApiKey"),
		GeminiModel:          v.GetString("geminiModel"),
		RollbarToken:         v.GetString("rollbarToken"),
		RecoveryCodeTimeout:  v.GetDuration("recoveryCodeTimeout"),
		FriendRequestDelay:   v.GetDuration("friendRequestDelay"),
		SessionTokenLifetime: v.GetDuration("sessionTokenLifetime"),
	}
}
