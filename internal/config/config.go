package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Render RenderConfig `mapstructure:"render"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type LLMConfig struct {
	Provider        string        `mapstructure:"provider"` // ollama|llamacpp|http
	OllamaHost      string        `mapstructure:"ollama_host"`
	OllamaModel     string        `mapstructure:"ollama_model"`
	ModelPath       string        `mapstructure:"model_path"`    // GGUF artifact for the llamacpp provider
	RunnerBin       string        `mapstructure:"runner_bin"`    // llama.cpp CLI binary name or path
	HTTPEndpoint    string        `mapstructure:"http_endpoint"` // delegate endpoint for the http provider
	MaxTokens       int           `mapstructure:"max_tokens"`
	Temperature     float32       `mapstructure:"temperature"`
	Timeout         time.Duration `mapstructure:"timeout"`
	SystemPrompt    string        `mapstructure:"system_prompt"`
	AvailableModels []string      `mapstructure:"available_models"`
}

type RenderConfig struct {
	MediaRoot string        `mapstructure:"media_root"`
	WorkRoot  string        `mapstructure:"work_root"`
	Timeout   time.Duration `mapstructure:"timeout"` // 0 = no deadline on the renderer process
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SystemPrompt is the default instruction handed to the code-generation model.
// The conversation is cumulative: the model re-emits the full scene every turn,
// so each session's history must stay consistent with what the model produced.
const SystemPrompt = "You are a Manim code generator.\n" +
	"Rules:\n" +
	"- If the user request is NOT about Manim, reply with -1 and nothing else.\n" +
	"- Otherwise, OUTPUT ONLY Python code (no backticks, no comments, no text).\n" +
	"- The code must include: from manim import *\n" +
	"- Define exactly one Scene class named GeneratedScene(Scene) with a construct(self) method.\n" +
	"- The code must be self-contained and runnable via manim CLI.\n" +
	"- Use only animations available in Manim v0.19.x (e.g., Create, Transform, ReplacementTransform, FadeIn, FadeOut, Write, Indicate, GrowFromCenter).\n" +
	"- Do NOT use non-existent or experimental APIs (e.g., TransformFromMask).\n" +
	"- Conversation is cumulative: each new user message refines or extends the same one GeneratedScene.\n" +
	"  Incorporate ALL prior user instructions unless the latest explicitly replaces them.\n" +
	"  For requests like 'expand it' or 'transform it', first create the earlier object(s) from history, then apply the new animation.\n" +
	"  Always output the full, final scene code that includes previous steps and the new change.\n"

var cfg *Config

func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("AUTOMANIM")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	applyEnvFallbacks(cfg)

	return cfg, nil
}

func Get() *Config {
	return cfg
}

func setDefaults() {
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30m")
	viper.SetDefault("server.max_header_bytes", 1<<20)

	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("llm.ollama_host", "http://localhost:11434")
	viper.SetDefault("llm.ollama_model", "gemma3:latest")
	viper.SetDefault("llm.runner_bin", "llama-cli")
	viper.SetDefault("llm.max_tokens", 2048)
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.timeout", "120s")
	viper.SetDefault("llm.system_prompt", SystemPrompt)
	viper.SetDefault("llm.available_models", []string{
		"gpt-oss:120b-cloud",
		"gemini-3-flash-preview:cloud",
		"qwen3-coder:480b-cloud",
		"qwen3-next:80b-cloud",
		"gemma3:27b-cloud",
		"glm-4.7:cloud",
		"ministral-3:14b-cloud",
	})

	viper.SetDefault("render.media_root", "./media")
	viper.SetDefault("render.work_root", "./workdir")
	viper.SetDefault("render.timeout", "0s")

	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "Authorization"})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 300)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// applyEnvFallbacks honors the bare env names the original deployment used,
// without the AUTOMANIM prefix. Config file values win.
func applyEnvFallbacks(c *Config) {
	if v := os.Getenv("OLLAMA_HOST"); v != "" && !viper.InConfig("llm.ollama_host") {
		c.LLM.OllamaHost = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" && !viper.InConfig("llm.ollama_model") {
		c.LLM.OllamaModel = v
	}
	if c.LLM.ModelPath == "" {
		c.LLM.ModelPath = os.Getenv("LLM_MODEL_PATH")
	}
	if c.LLM.HTTPEndpoint == "" {
		c.LLM.HTTPEndpoint = os.Getenv("LLM_HTTP_ENDPOINT")
	}
}
