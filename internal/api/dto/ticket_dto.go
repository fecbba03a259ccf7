package dto

// TicketForm is posted by the create/edit form. An empty ID creates a ticket.
type TicketForm struct {
	ID          string `form:"id" json:"id"`
	Title       string `form:"title" json:"title"`
	Status      string `form:"status" json:"status"`
	Description string `form:"description" json:"description"`
}

// DeleteForm is posted by the delete confirmation.
type DeleteForm struct {
	Confirm string `form:"confirm" json:"confirm"`
}

// Confirmed reports whether the user accepted the deletion.
func (f DeleteForm) Confirmed() bool {
	return f.Confirm == "yes"
}
