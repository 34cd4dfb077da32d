package handlers

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message" example:"operation successful"`
}
