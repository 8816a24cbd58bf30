package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Pass string `mapstructure:"pass"`
	DB   int    `mapstructure:"db"`
}

type VoiceConfig struct {
	STTURL   string `mapstructure:"stt_url"`
	TTSURL   string `mapstructure:"tts_url"`
	TTSVoice string `mapstructure:"tts_voice"`
	// TTSVoices picks a piper voice per language code.
	TTSVoices  map[string]string `mapstructure:"tts_voices"`
	Timeout    time.Duration     `mapstructure:"timeout"`
	Languages  []string          `mapstructure:"languages"`
	MaxAudioKB int               `mapstructure:"max_audio_kb"`
}

type ExtractionConfig struct {
	// openai | gemini | ollama | keyword
	Provider     string        `mapstructure:"provider"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	OpenAIModel  string        `mapstructure:"openai_model"`
	OpenAIURL    string        `mapstructure:"openai_url"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	GeminiModel  string        `mapstructure:"gemini_model"`
	OllamaURLs   []string      `mapstructure:"ollama_urls"`
	OllamaModel  string        `mapstructure:"ollama_model"`
	DemoMode     bool          `mapstructure:"demo_mode"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

type ConversationConfig struct {
	AcceptThreshold  float64       `mapstructure:"accept_threshold"`
	ConfirmThreshold float64       `mapstructure:"confirm_threshold"`
	AdvanceDelay     time.Duration `mapstructure:"advance_delay"`
	SpeechTimeout    time.Duration `mapstructure:"speech_timeout"`
	ListenTimeout    time.Duration `mapstructure:"listen_timeout"`
	MaxRetries       int           `mapstructure:"max_retries"`
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
}

type AuthConfig struct {
	JWTSecret         string `mapstructure:"jwt_secret"`
	TokenTTLHours     int    `mapstructure:"token_ttl_hours"`
	TemporaryPassword string `mapstructure:"temporary_password"`
}

// ClientConfig configures the quickpost CLI.
type ClientConfig struct {
	APIURL           string        `mapstructure:"api_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRecordSeconds int           `mapstructure:"max_record_seconds"`
	SampleRate       int           `mapstructure:"sample_rate"`
}

type GazetteerConfig struct {
	// Optional override of the bundled gazetteer.
	Path string `mapstructure:"path"`
}

type Settings struct {
	Server       ServerConfig       `mapstructure:"server"`
	DB           DBConfig           `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Voice        VoiceConfig        `mapstructure:"voice"`
	Extraction   ExtractionConfig   `mapstructure:"extraction"`
	Conversation ConversationConfig `mapstructure:"conversation"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Gazetteer    GazetteerConfig    `mapstructure:"gazetteer"`
	Client       ClientConfig       `mapstructure:"client"`
	Env          string             `mapstructure:"env"`
	Debug        bool               `mapstructure:"debug"`
}

// Load reads config_<ENV>.yaml from the working directory. Missing files are
// tolerated; defaults and QUICKPOST_* environment variables still apply. A
// .env file, when present, is loaded into the environment first.
func Load() (*Settings, error) {
	// a missing .env is fine
	_ = godotenv.Load()
	return LoadFrom(".")
}

func LoadFrom(dir string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("quickpost")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("config_" + genEnv(v))
	v.AddConfigPath(dir)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.pool_size", 10)
	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("voice.stt_url", "http://localhost:9000")
	v.SetDefault("voice.tts_url", "http://localhost:5000")
	v.SetDefault("voice.timeout", 30*time.Second)
	v.SetDefault("voice.languages", []string{"en", "hi", "ta", "te", "kn", "ml", "mr", "bn", "gu", "pa"})
	v.SetDefault("voice.max_audio_kb", 10*1024)

	v.SetDefault("extraction.provider", "keyword")
	v.SetDefault("extraction.openai_model", "gpt-4o-mini")
	v.SetDefault("extraction.gemini_model", "gemini-1.5-flash")
	v.SetDefault("extraction.ollama_model", "llama3.1:8b-instruct")
	v.SetDefault("extraction.demo_mode", false)
	v.SetDefault("extraction.cache_ttl", 24*time.Hour)

	v.SetDefault("conversation.accept_threshold", 0.7)
	v.SetDefault("conversation.confirm_threshold", 0.6)
	v.SetDefault("conversation.advance_delay", 1500*time.Millisecond)
	v.SetDefault("conversation.speech_timeout", 8*time.Second)
	v.SetDefault("conversation.listen_timeout", 15*time.Second)
	v.SetDefault("conversation.max_retries", 3)
	v.SetDefault("conversation.session_ttl", 30*time.Minute)
	v.SetDefault("conversation.idle_timeout", 10*time.Minute)

	v.SetDefault("client.api_url", "http://localhost:8080")
	v.SetDefault("client.timeout", 60*time.Second)
	v.SetDefault("client.max_record_seconds", 60)
	v.SetDefault("client.sample_rate", 16000)

	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("auth.temporary_password", "QuickPost@123")
}

func (s *Settings) validate() error {
	c := s.Conversation
	if c.ConfirmThreshold < 0 || c.AcceptThreshold > 1 || c.ConfirmThreshold > c.AcceptThreshold {
		return fmt.Errorf("invalid conversation thresholds: confirm=%v accept=%v", c.ConfirmThreshold, c.AcceptThreshold)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("conversation.max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if len(s.Voice.Languages) == 0 {
		return fmt.Errorf("voice.languages must not be empty")
	}
	return nil
}

func genEnv(v *viper.Viper) string {
	env := v.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
