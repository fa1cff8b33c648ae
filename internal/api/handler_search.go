package api

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"mill-maintenance-backend/internal/model"
)

const (
	minSearchLength = 2
	searchLimit     = 5
)

// SearchResult is one hit in the global search box.
type SearchResult struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Href     string `json:"href"`
}

// Search handles GET /api/search?q=. Wire and equipment lookups run
// concurrently; wire hits are listed first.
func (h *Handler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(q) < minSearchLength {
		c.JSON(http.StatusOK, []SearchResult{})
		return
	}

	var (
		wires     []model.WireRecord
		equipment []model.EquipmentRecord
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		wires, err = h.store.SearchWires(ctx, q, searchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		equipment, err = h.store.SearchEquipment(ctx, q, searchLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	results := make([]SearchResult, 0, len(wires)+len(equipment))
	for _, w := range wires {
		results = append(results, SearchResult{
			ID:       w.ID,
			Type:     "wire",
			Title:    w.MachineName + " - " + w.WireType,
			Subtitle: w.PartyName + " | " + w.ChangeDate.String(),
			Href:     "/wire-records?id=" + w.ID,
		})
	}
	for _, e := range equipment {
		results = append(results, SearchResult{
			ID:       e.ID,
			Type:     "equipment",
			Title:    e.EquipmentName,
			Subtitle: e.GroupName + " | " + e.ChangeDate.String(),
			Href:     "/equipment-records?id=" + e.ID,
		})
	}
	c.JSON(http.StatusOK, results)
}
