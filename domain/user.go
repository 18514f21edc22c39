package domain

import "time"

type User struct {
	Id           string
	Username     string
	PasswordHash string
}

// Drawing is a texture submitted at the end of the drawing phase.
// Texture holds the flate-compressed raw RGBA export of the player's canvas.
type Drawing struct {
	Id        string
	SessionId string
	UserId    string
	PlayerId  PlayerId
	Width     int
	Height    int
	Texture   []byte
	CreatedAt time.Time
}
