package errors

// Error is the JSON body returned for every failed API request.
type Error struct {
	Message string `json:"message"`
}
