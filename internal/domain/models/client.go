package models

// Client is a party delivering goods. Hidden clients drop out of listings but
// keep resolving for the receivings that reference them.
type Client struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Note     string `json:"note"`
	IsHidden bool   `json:"isHidden"`
}
