package exception

import "fmt"

type SnapshotNotFoundError struct {
	*AppError
	SnapshotId string
}

func NewSnapshotNotFoundError(snapshotId string) *SnapshotNotFoundError {
	return &SnapshotNotFoundError{
		AppError: &AppError{
			Code:    "SNAPSHOT_NOT_FOUND",
			Message: fmt.Sprintf("snapshot with id '%s' does not exist", snapshotId),
		},
		SnapshotId: snapshotId,
	}
}

type DatabaseError struct {
	*AppError
}

func NewDatabaseError(message string, cause error) *DatabaseError {
	return &DatabaseError{
		AppError: &AppError{
			Code:    "DATABASE_ERROR",
			Message: message,
			Cause:   cause,
		},
	}
}
