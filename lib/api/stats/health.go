package stats

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/typecast/typecast-go/lib/db"
	"github.com/typecast/typecast-go/lib/session"
)

type DBChecker struct {
	db db.DataStore
}

func (d DBChecker) Name() string {
	return "database"
}

func (d DBChecker) Check() Check {
	err := d.db.Ping()

	if err != nil {
		return Check{
			Status: StatusFail,
			Output: err.Error(),
		}
	}

	return Check{
		Status:     StatusPass,
		Observed:   "ok",
		ObservedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

type ReplayChecker struct {
	manager *session.Manager
}

func (r ReplayChecker) Name() string {
	return "replay"
}

func (r ReplayChecker) Check() Check {
	stats, err := r.manager.GetStats()
	if err != nil {
		return Check{
			Status: StatusFail,
			Output: err.Error(),
		}
	}
	if stats.ActiveReplays < 0 {
		return Check{
			Status: StatusFail,
			Output: "invalid replay count",
		}
	}

	return Check{
		Status:   StatusPass,
		Observed: stats.ActiveReplays,
	}
}

// Handler serves the RFC Health Check Draft response for the service.
func Handler(
	version string,
	releaseID string,
	serviceID string,
	checkers []Checker,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := HealthResponse{
			Status:    StatusPass,
			Version:   version,
			ReleaseID: releaseID,
			ServiceID: serviceID,
			Checks:    map[string][]Check{},
		}

		httpStatus := fiber.StatusOK

		for _, checker := range checkers {
			check := checker.Check()
			resp.Checks[checker.Name()] = []Check{check}

			switch check.Status {
			case StatusFail:
				resp.Status = StatusFail
				httpStatus = fiber.StatusServiceUnavailable
			case StatusWarn:
				if resp.Status != StatusFail {
					resp.Status = StatusWarn
					httpStatus = fiber.StatusOK
				}
			}
		}

		return c.Status(httpStatus).JSON(resp)
	}
}
