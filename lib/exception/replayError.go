package exception

import "fmt"

type ReplayNotFoundError struct {
	*AppError
	ReplayId string
}

func NewReplayNotFoundError(replayId string) *ReplayNotFoundError {
	return &ReplayNotFoundError{
		AppError: &AppError{
			Code:    "REPLAY_NOT_FOUND",
			Message: fmt.Sprintf("replay with id '%s' does not exist", replayId),
		},
		ReplayId: replayId,
	}
}

type ReplayConflictError struct {
	*AppError
	Path string
}

// NewReplayConflictError reports that a replay is already running on the
// document; concurrent replays on one buffer would desynchronize offsets.
func NewReplayConflictError(path string) *ReplayConflictError {
	return &ReplayConflictError{
		AppError: &AppError{
			Code:    "REPLAY_IN_PROGRESS",
			Message: fmt.Sprintf("a replay is already running on document '%s'", path),
		},
		Path: path,
	}
}
