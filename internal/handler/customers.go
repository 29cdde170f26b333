package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chihoangvnn/sss-sub001/internal/dto"
	"github.com/chihoangvnn/sss-sub001/internal/service"
)

// CustomersHandler fronts the customer directory search.
type CustomersHandler struct{ svc service.CustomerService }

func NewCustomersHandler(svc service.CustomerService) *CustomersHandler {
	return &CustomersHandler{svc: svc}
}

// Search matches customers by name or phone substring (?q=).
func (h *CustomersHandler) Search(c *gin.Context) {
	customers, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		out = append(out, dto.CustomerToResponse(cust))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "total": len(out)})
}
