package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/quickpost/internal/gazetteer"
)

type GazetteerHandler struct {
	gaz *gazetteer.Gazetteer
}

func NewGazetteerHandler(gaz *gazetteer.Gazetteer) *GazetteerHandler {
	return &GazetteerHandler{gaz: gaz}
}

// States lists every state
// @Summary List states
// @Tags Gazetteer
// @Produce json
// @Success 200 {object} StatesResponse "States"
// @Router /gazetteer/states [get]
func (h *GazetteerHandler) States(c *gin.Context) {
	c.JSON(http.StatusOK, StatesResponse{States: h.gaz.StateNames()})
}

// Districts lists the districts of a state
// @Summary List districts of a state
// @Tags Gazetteer
// @Produce json
// @Param state path string true "State name, case-insensitive"
// @Success 200 {object} DistrictsResponse "Districts"
// @Failure 404 {object} ErrorResponse "Unknown state"
// @Router /gazetteer/states/{state}/districts [get]
func (h *GazetteerHandler) Districts(c *gin.Context) {
	st, ok := h.gaz.State(c.Param("state"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown state", Details: c.Param("state")})
		return
	}
	c.JSON(http.StatusOK, DistrictsResponse{State: st.Name, Districts: st.Districts})
}

// Services lists the service catalog
// @Summary List services
// @Tags Gazetteer
// @Produce json
// @Success 200 {object} ServicesResponse "Service catalog"
// @Router /gazetteer/services [get]
func (h *GazetteerHandler) Services(c *gin.Context) {
	c.JSON(http.StatusOK, ServicesResponse{Services: h.gaz.Services})
}

func (h *GazetteerHandler) RegisterGazetteerRoutes(r *gin.RouterGroup) {
	g := r.Group("/gazetteer")
	{
		g.GET("/states", h.States)
		g.GET("/states/:state/districts", h.Districts)
		g.GET("/services", h.Services)
	}
}
