package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/typecast/typecast-go/lib/api/documents"
	"github.com/typecast/typecast-go/lib/api/replay"
	"github.com/typecast/typecast-go/lib/api/snapshots"
	"github.com/typecast/typecast-go/lib/api/stats"
	"github.com/typecast/typecast-go/lib/db"
	"github.com/typecast/typecast-go/lib/document"
	"github.com/typecast/typecast-go/lib/session"
	"github.com/typecast/typecast-go/lib/settings"
	"github.com/typecast/typecast-go/lib/snapshot"
	"github.com/typecast/typecast-go/lib/ws"
)

func InitAPI(c *fiber.App, store db.DataStore, snapshotStore *snapshot.Store,
	registry *document.Registry, manager *session.Manager, hub *ws.Hub,
	retrievedSettings settings.Settings, validatorEvaluator *validator.Validate,
	logger *zap.SugaredLogger) {

	documents.Init(c, registry, validatorEvaluator)
	snapshots.Init(c, snapshotStore, registry, validatorEvaluator, logger)
	replay.Init(c, manager, snapshotStore, registry, hub, retrievedSettings, validatorEvaluator, logger)
	stats.Init(c, store, manager, registry, retrievedSettings)
}
