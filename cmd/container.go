// container.go
package main

import (
	"github.com/Abraxas-365/traveldocs/pkg/config"
	"github.com/Abraxas-365/traveldocs/pkg/logx"
	"github.com/Abraxas-365/traveldocs/pkg/travel"
	"github.com/Abraxas-365/traveldocs/pkg/travel/travelapi"
	"github.com/Abraxas-365/traveldocs/pkg/travel/travelinfra"
	"github.com/Abraxas-365/traveldocs/pkg/travel/travelsrv"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	ConversationStore travel.ConversationStore
	Gateway           travel.Gateway

	// Services
	TravelService *travelsrv.TravelService

	// API Handlers
	TravelHandlers *travelapi.TravelHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing dependency container...")

	c := &Container{
		Config: cfg,
	}

	c.initInfrastructure()
	c.initServices()

	logx.Info("✅ Container initialized successfully")
	return c
}

func (c *Container) initInfrastructure() {
	// Conversations live for the lifetime of the process only
	c.ConversationStore = travelinfra.NewMemoryConversationStore()
	logx.Warn("⚠️  Using in-memory conversation store (history is lost on restart)")

	c.Gateway = travelinfra.NewLLMGatewayFromConfig(&c.Config.LLM)
	logx.Infof("✅ LLM gateway configured (model: %s, base: %s, timeout: %s)",
		c.Config.LLM.Model, c.Config.LLM.BaseURL, c.Config.LLM.Timeout)
}

func (c *Container) initServices() {
	c.TravelService = travelsrv.NewTravelService(c.ConversationStore, c.Gateway)
	c.TravelHandlers = travelapi.NewTravelHandlers(c.TravelService)
	logx.Info("✅ All services and handlers initialized")
}

// Cleanup flushes the logger
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")
	logx.Sync()
}
