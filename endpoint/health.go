package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/healthplus/clinic-api/util"
)

// Health godoc
// @Summary      Health check
// @Description  Report that the server is up
// @Tags         Health
// @Produce      json
// @Success      200 {object} util.APIResponse "Server is running"
// @Router       /api/health [get]
func Health(c *gin.Context) {
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Server is running"})
}
