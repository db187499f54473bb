package models

// Invoice belongs to the user referenced by OwnerUserID. The owner may not exist.
type Invoice struct {
	ID          int    `json:"id"`
	OwnerUserID int    `json:"owner_user_id"`
	Title       string `json:"title"`
	Notes       string `json:"notes"`
}
