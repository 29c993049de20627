package request

// LoginRequest opens a manager session
type LoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// SetPINRequest sets or clears the manager PIN. An empty PIN removes it.
type SetPINRequest struct {
	PIN string `json:"pin"`
}
