package requests

type CreateTicket struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

type ListTickets struct {
	State string
	Skip  int
	Limit int
}
