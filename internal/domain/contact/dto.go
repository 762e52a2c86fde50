package contact

// Request is the payload of the public contact form.
type Request struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email,max=320"`
	Company string `json:"company" binding:"max=200"`
	Phone   string `json:"phone" binding:"max=64"`
	Service string `json:"service" binding:"max=200"`
	Message string `json:"message" binding:"required,min=10,max=5000"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
