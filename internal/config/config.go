package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AssistantAgentName is the agent name advertised on the A2A surface.
const AssistantAgentName = "JiraAssistantAgent"

// Config holds the application configuration. Components receive it
// explicitly at construction and never read ambient state themselves.
type Config struct {
	// Server configuration
	ServerPort  int
	ServerHost  string
	CORSOrigins []string

	// Agent configuration (A2A surface)
	AgentName    string
	AgentVersion string
	AgentURL     string

	// Jira configuration
	JiraBaseURL  string
	JiraEmail    string
	JiraAPIToken string

	// Authentication for the A2A surface: "jwt" or "apikey"
	AuthType  string
	JWTSecret string
	APIKey    string

	// LLM configuration
	LLMProvider   string // "openai" or "azure"
	LLMModel      string
	LLMAPIKey     string
	LLMServiceURL string
	LLMMaxTokens  int
	LLMTimeout    int // in seconds

	// Search configuration
	SearchMaxResults int
}

// init loads environment variables from a .env file when present
func init() {
	if err := godotenv.Load(); err != nil {
		if err = godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using environment variables or defaults.")
		}
	}
}

// NewConfig creates a new configuration from environment variables
func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "localhost")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")

	v.SetDefault("AGENT_NAME", AssistantAgentName)
	v.SetDefault("AGENT_VERSION", "1.0.0")
	v.SetDefault("AGENT_URL", "http://localhost:8080")

	v.SetDefault("JIRA_BASE_URL", "https://your-jira-instance.atlassian.net")
	v.SetDefault("JIRA_EMAIL", "")
	v.SetDefault("JIRA_API_TOKEN", "")

	v.SetDefault("AUTH_TYPE", "apikey")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("API_KEY", "")

	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("LLM_MODEL", "gpt-4")
	v.SetDefault("LLM_API_KEY", "")
	v.SetDefault("LLM_SERVICE_URL", "")
	v.SetDefault("LLM_MAX_TOKENS", 4000)
	v.SetDefault("LLM_TIMEOUT", 30)

	v.SetDefault("SEARCH_MAX_RESULTS", 50)

	return &Config{
		ServerPort:  v.GetInt("SERVER_PORT"),
		ServerHost:  v.GetString("SERVER_HOST"),
		CORSOrigins: splitOrigins(v.GetString("CORS_ORIGINS")),

		AgentName:    v.GetString("AGENT_NAME"),
		AgentVersion: v.GetString("AGENT_VERSION"),
		AgentURL:     v.GetString("AGENT_URL"),

		JiraBaseURL:  strings.TrimRight(v.GetString("JIRA_BASE_URL"), "/"),
		JiraEmail:    v.GetString("JIRA_EMAIL"),
		JiraAPIToken: v.GetString("JIRA_API_TOKEN"),

		AuthType:  v.GetString("AUTH_TYPE"),
		JWTSecret: v.GetString("JWT_SECRET"),
		APIKey:    v.GetString("API_KEY"),

		LLMProvider:   v.GetString("LLM_PROVIDER"),
		LLMModel:      v.GetString("LLM_MODEL"),
		LLMAPIKey:     v.GetString("LLM_API_KEY"),
		LLMServiceURL: v.GetString("LLM_SERVICE_URL"),
		LLMMaxTokens:  v.GetInt("LLM_MAX_TOKENS"),
		LLMTimeout:    v.GetInt("LLM_TIMEOUT"),

		SearchMaxResults: v.GetInt("SEARCH_MAX_RESULTS"),
	}
}

// splitOrigins parses a comma-separated origin list, dropping blanks
func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
