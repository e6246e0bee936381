package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leademy-studio/shusha-rest/internal/domain"
)

type orderCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

type orderDeliveryRequest struct {
	Method  string `json:"method" binding:"required"`
	Address string `json:"address"`
	Comment string `json:"comment"`
}

type orderLineRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category"`
	Weight   string `json:"weight"`
	Quantity int    `json:"quantity" binding:"required"`
}

type orderRequest struct {
	Customer  orderCustomerRequest `json:"customer" binding:"required"`
	Delivery  orderDeliveryRequest `json:"delivery" binding:"required"`
	Payment   string               `json:"payment" binding:"required"`
	Items     []orderLineRequest   `json:"items" binding:"required"`
	Subtotal  int64                `json:"subtotal"`
	Discount  int64                `json:"discount"`
	Total     int64                `json:"total"`
	Timestamp time.Time            `json:"timestamp"`
}

type orderAck struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func ordersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		accepted, err := svc.Accept(c.Request.Context(), req.toDomain())
		if err != nil {
			if errors.Is(err, domain.ErrInvalidOrder) || errors.Is(err, domain.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept order"})
			return
		}
		c.JSON(http.StatusCreated, orderAck{ID: accepted.ID, Status: "accepted"})
	}
}

func (r orderRequest) toDomain() domain.Order {
	items := make([]domain.CartLine, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.CartLine{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			ImageURL: it.ImageURL,
			Category: it.Category,
			Weight:   it.Weight,
			Quantity: it.Quantity,
		})
	}
	return domain.Order{
		Customer: domain.Customer{
			Name:  r.Customer.Name,
			Phone: r.Customer.Phone,
			Email: r.Customer.Email,
		},
		Delivery: domain.Delivery{
			Method:  r.Delivery.Method,
			Address: r.Delivery.Address,
			Comment: r.Delivery.Comment,
		},
		Payment:   r.Payment,
		Items:     items,
		Subtotal:  r.Subtotal,
		Discount:  r.Discount,
		Total:     r.Total,
		Timestamp: r.Timestamp,
	}
}
