package handlers

import (
	"net/http"

	intconfig "github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/config"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Health(c *gin.Context) {
	journal := "disabled"
	if intconfig.DB != nil {
		journal = "ok"
		if err := intconfig.DB.PingContext(c.Request.Context()); err != nil {
			journal = "unreachable"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "journal": journal})
}

// Config exposes the public client configuration. Only publishable keys
// belong here.
func (h *Handlers) Config(c *gin.Context) {
	discounts := make(map[domain.Concession]float64, len(domain.Concessions))
	for _, con := range domain.Concessions {
		discounts[con] = utils.DiscountFor(con)
	}
	c.JSON(http.StatusOK, gin.H{
		"mapsApiKey":            h.Env.MapsAPIKey,
		"paymentPublishableKey": h.Env.PaymentPublishableKey,
		"fare": gin.H{
			"baseFare":  utils.BaseFare,
			"perKmRate": utils.PerKmRate,
			"discounts": discounts,
		},
		"concessions":        domain.Concessions,
		"trackingIntervalMs": h.Env.TrackingInterval.Milliseconds(),
	})
}
