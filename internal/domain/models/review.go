package models

// Review is customer feedback attached to a package.
type Review struct {
	ID        int64  `json:"id"`
	PackageID int64  `json:"packageId"`
	ClientID  int64  `json:"clientId"`
	Rating    int    `json:"rating"` // 1..5
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
