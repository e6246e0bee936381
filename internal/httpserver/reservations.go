package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leademy-studio/shusha-rest/internal/domain"
)

type reservationRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Guests int    `json:"guests" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
}

type reservationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func reservationsHandler(svc ReservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, reservationResponse{Success: false, Message: err.Error()})
			return
		}

		_, err := svc.Accept(c.Request.Context(), domain.Reservation{
			Date:   req.Date,
			Time:   req.Time,
			Guests: req.Guests,
			Phone:  req.Phone,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidOrder) {
				c.JSON(http.StatusBadRequest, reservationResponse{Success: false, Message: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, reservationResponse{Success: false, Message: "не удалось отправить бронирование"})
			return
		}
		c.JSON(http.StatusOK, reservationResponse{Success: true, Message: "Бронирование принято, мы свяжемся с вами"})
	}
}
