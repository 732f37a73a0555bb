package db

const SnapshotDoesNotExistError = "snapshot not found"
