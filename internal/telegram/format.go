package telegram

import (
	"fmt"
	"strings"

	"github.com/leademy-studio/shusha-rest/internal/domain"
	"github.com/leademy-studio/shusha-rest/internal/view"
)

// FormatOrder renders the operator-facing order summary.
func FormatOrder(order domain.Order) string {
	var b strings.Builder
	b.WriteString("Новый заказ")
	if order.ID != "" {
		fmt.Fprintf(&b, " №%s", order.ID)
	}
	b.WriteString("\n\n")

	for _, it := range order.Items {
		fmt.Fprintf(&b, "%s × %d — %s\n", it.Name, it.Quantity, view.FormatPrice(it.LineTotal()))
	}

	fmt.Fprintf(&b, "\nСумма: %s\n", view.FormatPrice(order.Subtotal))
	if order.Discount > 0 {
		fmt.Fprintf(&b, "Скидка: %s\n", view.FormatPrice(order.Discount))
	}
	fmt.Fprintf(&b, "Итого: %s\n\n", view.FormatPrice(order.Total))

	fmt.Fprintf(&b, "Имя: %s\nТелефон: %s\n", order.Customer.Name, order.Customer.Phone)
	if order.Customer.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", order.Customer.Email)
	}

	switch order.Delivery.Method {
	case domain.FulfillmentDelivery:
		fmt.Fprintf(&b, "Доставка: %s\n", order.Delivery.Address)
		if order.Delivery.Comment != "" {
			fmt.Fprintf(&b, "Комментарий: %s\n", order.Delivery.Comment)
		}
	default:
		b.WriteString("Самовывоз\n")
	}

	fmt.Fprintf(&b, "Оплата: %s", paymentLabel(order.Payment))
	return b.String()
}

// FormatReservation renders the operator-facing reservation request.
func FormatReservation(r domain.Reservation) string {
	var b strings.Builder
	b.WriteString("Бронирование столика\n\n")
	fmt.Fprintf(&b, "Дата: %s\nВремя: %s\nГостей: %d\nТелефон: %s", r.Date, r.Time, r.Guests, r.Phone)
	return b.String()
}

func paymentLabel(method string) string {
	switch method {
	case domain.PaymentCash:
		return "наличными"
	case domain.PaymentCard:
		return "картой"
	case domain.PaymentOnline:
		return "онлайн"
	default:
		return method
	}
}
