package bootstrap

import (
	"time"

	"keepnotes-be/internal/config"
	"keepnotes-be/internal/controller"
	"keepnotes-be/internal/pkg/logger"
	"keepnotes-be/internal/repository/memory"
	"keepnotes-be/internal/repository/unitofwork"
	"keepnotes-be/internal/service"
	"keepnotes-be/internal/websocket"
	"keepnotes-be/pkg/markdown"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

// noteEventsTopic is the single in-process topic the change feed runs on.
const noteEventsTopic = "note-events"

type Container struct {
	// Controllers
	NoteController       controller.INoteController
	LabelController      controller.ILabelController
	PreferenceController controller.IPreferenceController
	VaultController      controller.IVaultController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	NoteService     service.INoteService

	// WebSockets
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	sessionTTL := time.Duration(cfg.Vault.SessionTTLMinutes) * time.Minute
	vaultSessions := memory.NewVaultSessionRepository(sessionTTL)
	importer := markdown.NewImporter()

	// WebSocket Hub
	wsHub := websocket.NewHub(sysLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(noteEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, noteEventsTopic, wsHub)

	noteService := service.NewNoteService(
		uowFactory,
		publisherService,
		vaultSessions,
		importer,
		cfg.Notes.PreviewMaxRunes,
		cfg.Notes.TrashRetentionDays,
	)
	labelService := service.NewLabelService(uowFactory, publisherService)
	preferenceService := service.NewPreferenceService(uowFactory, publisherService)
	vaultService := service.NewVaultService(
		uowFactory,
		vaultSessions,
		publisherService,
		cfg.Vault.JWTSecret,
		sessionTTL,
	)

	// 4. Controllers
	return &Container{
		NoteController:       controller.NewNoteController(noteService),
		LabelController:      controller.NewLabelController(labelService),
		PreferenceController: controller.NewPreferenceController(preferenceService),
		VaultController:      controller.NewVaultController(vaultService),

		ConsumerService: consumerService,
		NoteService:     noteService,

		WebSocketHub: wsHub,
		Logger:       sysLogger,
	}
}
