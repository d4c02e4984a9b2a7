// Package wire provides dependency injection for the contactdesk application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/contactdesk/internal/adapters/cli"
	"github.com/example/contactdesk/internal/adapters/sqlite"
	"github.com/example/contactdesk/internal/app"
	"github.com/example/contactdesk/internal/config"
	"github.com/example/contactdesk/internal/db"
	"github.com/example/contactdesk/internal/ports/primary"
	"github.com/example/contactdesk/internal/server"
)

var (
	contactService    primary.ContactService
	transitionService primary.TransitionService
	assignmentService primary.AssignmentService
	once              sync.Once
)

// ContactService returns the singleton ContactService instance.
func ContactService() primary.ContactService {
	once.Do(initServices)
	return contactService
}

// TransitionService returns the singleton TransitionService instance.
func TransitionService() primary.TransitionService {
	once.Do(initServices)
	return transitionService
}

// AssignmentService returns the singleton AssignmentService instance.
func AssignmentService() primary.AssignmentService {
	once.Do(initServices)
	return assignmentService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	contactRepo := sqlite.NewContactRepository(database)
	statusRepo := sqlite.NewStatusRepository(database)
	grantRepo := sqlite.NewGrantRepository(database)
	noteRepo := sqlite.NewNoteRepository(database)
	eventRepo := sqlite.NewEventRepository(database)
	userRepo := sqlite.NewUserRepository(database)
	settingsRepo := sqlite.NewSettingsRepository(database)

	// The session binds permission resolution to the acting user
	session := app.NewSession(actingUserID(), grantRepo)
	userCache := app.NewUserCache(userRepo)

	// Create services (primary ports implementation)
	contactService = app.NewContactService(session, contactRepo, statusRepo, settingsRepo)
	transitionService = app.NewTransitionService(session, contactRepo, statusRepo, noteRepo, eventRepo)
	assignmentService = app.NewAssignmentService(session, contactRepo, userCache)
}

// actingUserID resolves the current user from the environment or the local
// config file. CONTACTDESK_USER wins so scripts can impersonate agents.
func actingUserID() string {
	if id := os.Getenv("CONTACTDESK_USER"); id != "" {
		return id
	}
	cwd, err := os.Getwd()
	if err == nil {
		if cfg, err := config.LoadConfig(cwd); err == nil && cfg.UserID != "" {
			return cfg.UserID
		}
	}
	return "USR-001"
}

// ContactAdapter returns a new ContactAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ContactAdapter() *cliadapter.ContactAdapter {
	return ContactAdapterWithOutput(os.Stdout)
}

// ContactAdapterWithOutput returns a new ContactAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func ContactAdapterWithOutput(out io.Writer) *cliadapter.ContactAdapter {
	once.Do(initServices)
	return cliadapter.NewContactAdapter(contactService, transitionService, assignmentService, out)
}

// HTTPServer returns a server over the singleton services.
func HTTPServer() *server.Server {
	once.Do(initServices)
	return server.New(contactService, transitionService, assignmentService)
}
