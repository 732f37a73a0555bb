package replay

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apiError "github.com/typecast/typecast-go/lib/api/errors"
	"github.com/typecast/typecast-go/lib/document"
	"github.com/typecast/typecast-go/lib/exception"
	replay2 "github.com/typecast/typecast-go/lib/replay"
	"github.com/typecast/typecast-go/lib/session"
	"github.com/typecast/typecast-go/lib/settings"
	"github.com/typecast/typecast-go/lib/snapshot"
	"github.com/typecast/typecast-go/lib/ws"
)

type startReplayRequest struct {
	Path string `json:"path" validate:"required"`
	// SnapshotId replays one snapshot; SnapshotIds replays several back to
	// back with the configured pause between them. Exactly one of the two
	// must be set.
	SnapshotId       string   `json:"snapshotId"`
	SnapshotIds      []string `json:"snapshotIds"`
	CharsPerSecond   *float64 `json:"charsPerSecond" validate:"omitempty,gt=0"`
	AnimateDeletions *bool    `json:"animateDeletions"`
}

type replayStatusResponse struct {
	Id         string    `json:"id"`
	Path       string    `json:"path"`
	SnapshotId string    `json:"snapshotId,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	Phase      string    `json:"phase"`
	Mutations  int       `json:"mutations"`
	Outcome    *string   `json:"outcome,omitempty"`
	Error      *string   `json:"error,omitempty"`
}

func statusOf(sess *session.Session) replayStatusResponse {
	state := sess.State()
	resp := replayStatusResponse{
		Id:         sess.ID,
		Path:       sess.Path,
		SnapshotId: sess.SnapshotID,
		StartedAt:  sess.StartedAt,
		Phase:      state.Phase.String(),
		Mutations:  state.Mutations,
	}
	if result := sess.Result(); result != nil {
		outcome := result.Outcome.String()
		resp.Outcome = &outcome
		resp.Mutations = result.Mutations
		if result.Err != nil {
			errText := result.Err.Error()
			resp.Error = &errText
		}
	}
	return resp
}

func clampRate(rate float64, replaySettings settings.ReplaySettings) float64 {
	if rate < replaySettings.MinCharsPerSecond {
		return replaySettings.MinCharsPerSecond
	}
	if rate > replaySettings.MaxCharsPerSecond {
		return replaySettings.MaxCharsPerSecond
	}
	return rate
}

func Init(c *fiber.App, manager *session.Manager, store *snapshot.Store,
	registry *document.Registry, hub *ws.Hub, retrievedSettings settings.Settings,
	validatorEvaluator *validator.Validate, logger *zap.SugaredLogger) {

	c.Post("/api/replay", func(c *fiber.Ctx) error {
		var req startReplayRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apiError.Error{
				Message: "Invalid request body",
			})
		}
		if err := validatorEvaluator.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apiError.Error{
				Message: err.Error(),
			})
		}

		snapshotIds := req.SnapshotIds
		if req.SnapshotId != "" {
			snapshotIds = append([]string{req.SnapshotId}, snapshotIds...)
		}
		if len(snapshotIds) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(apiError.Error{
				Message: "snapshotId or snapshotIds is required",
			})
		}

		var targets = make([]session.Target, 0, len(snapshotIds))
		for _, id := range snapshotIds {
			found, err := store.Get(id)
			if err != nil {
				var notFound *exception.SnapshotNotFoundError
				if errors.As(err, &notFound) {
					return c.Status(fiber.StatusNotFound).JSON(apiError.Error{
						Message: "Snapshot not found: " + id,
					})
				}
				return c.Status(fiber.StatusInternalServerError).JSON(apiError.Error{
					Message: "Could not load snapshot",
				})
			}
			targets = append(targets, session.Target{SnapshotID: found.ID, Content: found.Content})
		}

		opts := replay2.Options{
			CharsPerSecond:   retrievedSettings.Replay.DefaultCharsPerSecond,
			AnimateDeletions: retrievedSettings.Replay.AnimateDeletions,
		}
		if req.CharsPerSecond != nil {
			opts.CharsPerSecond = clampRate(*req.CharsPerSecond, retrievedSettings.Replay)
		}
		if req.AnimateDeletions != nil {
			opts.AnimateDeletions = *req.AnimateDeletions
		}

		liveBuffer := document.NewBroadcastBuffer(registry.GetOrCreate(req.Path), hub, req.Path)
		pause := time.Duration(retrievedSettings.Replay.SequencePauseMs) * time.Millisecond

		sess, err := manager.Start(req.Path, liveBuffer, targets, opts, pause)
		if err != nil {
			var conflict *exception.ReplayConflictError
			if errors.As(err, &conflict) {
				return c.Status(fiber.StatusConflict).JSON(apiError.Error{
					Message: conflict.Message,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(apiError.Error{
				Message: "Could not start replay",
			})
		}

		logger.Infow("replay started", "replayId", sess.ID, "path", req.Path,
			"snapshots", len(targets), "charsPerSecond", opts.CharsPerSecond)
		return c.Status(fiber.StatusAccepted).JSON(statusOf(sess))
	})

	c.Get("/api/replay/:replayId", func(c *fiber.Ctx) error {
		sess, err := manager.Get(c.Params("replayId"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(apiError.Error{
				Message: "Replay not found",
			})
		}
		return c.JSON(statusOf(sess))
	})

	c.Delete("/api/replay/:replayId", func(c *fiber.Ctx) error {
		if err := manager.Cancel(c.Params("replayId")); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(apiError.Error{
				Message: "Replay not found",
			})
		}
		return c.SendStatus(fiber.StatusAccepted)
	})
}
