package config

type ServerConfig struct {
	Port                 int
	LogLevel             string
	CORSOrigins          []string
	CORSAllowCredentials bool
	BodyLimit            int
}

// AllowsAnyOrigin reports whether CORS is left wide open
func (s ServerConfig) AllowsAnyOrigin() bool {
	if len(s.CORSOrigins) == 0 {
		return true
	}
	for _, o := range s.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:                 getEnvInt("SERVER_PORT", 8000),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		CORSOrigins:          getEnvStringSlice("CORS_ORIGINS", []string{"*"}),
		CORSAllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		BodyLimit:            getEnvInt("SERVER_BODY_LIMIT", 1024*1024),
	}
}
