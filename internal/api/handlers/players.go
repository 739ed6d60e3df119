package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/players"
	"github.com/jstittsworth/shotcharts/pkg/utils"
)

// PlayerEntry is one row of the directory listing.
type PlayerEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PlayersHandler struct {
	directory *players.Directory
}

func NewPlayersHandler(directory *players.Directory) *PlayersHandler {
	return &PlayersHandler{directory: directory}
}

// GetPlayers lists the player directory in alphabetical order. An exact
// display name in ?player= narrows the listing to that single player.
func (h *PlayersHandler) GetPlayers(c *gin.Context) {
	if name := c.Query("player"); name != "" {
		id, ok := h.directory.IDFor(name)
		if !ok {
			utils.SendNotFound(c, "Player not found in directory")
			return
		}
		utils.SendSuccessWithMeta(c, []PlayerEntry{{ID: id, Name: name}}, &utils.Meta{Count: 1})
		return
	}

	names := h.directory.Names()
	entries := make([]PlayerEntry, 0, len(names))
	for _, name := range names {
		id, _ := h.directory.IDFor(name)
		entries = append(entries, PlayerEntry{ID: id, Name: name})
	}
	utils.SendSuccessWithMeta(c, entries, &utils.Meta{Count: len(entries)})
}
