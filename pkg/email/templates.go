package email

import (
	"fmt"

	"truckpro/internal/models"
)

// BookingConfirmation renders the email sent to a shipper when their
// booking is recorded.
func BookingConfirmation(b *models.Booking) (subject, body string) {
	subject = fmt.Sprintf("TruckPro booking %s received", b.ID)
	body = fmt.Sprintf(`<h2>Booking received</h2>
<p>Hi %s,</p>
<p>Your booking <strong>%s</strong> has been recorded and is awaiting confirmation.</p>
<ul>
  <li>Route: %s to %s</li>
  <li>Date: %s %s</li>
  <li>Load: %.1f tonnes of %s</li>
  <li>Assigned truck: %s</li>
  <li>Estimated price: $%.2f</li>
</ul>
<p>You will be notified when the fleet owner accepts the booking.</p>`,
		b.ShipperName, b.ID, b.Pickup, b.Drop, b.BookingDate, b.BookingTime,
		b.LoadTonnes, b.GoodsType, b.TruckID, b.CalculatedPrice)
	return subject, body
}

// AssistanceDispatch renders the notification sent when roadside assistance
// is dispatched to a truck.
func AssistanceDispatch(req *models.AssistanceRequest) (subject, body string) {
	subject = fmt.Sprintf("Assistance dispatched for truck %s", req.TruckID)
	body = fmt.Sprintf(`<h2>Assistance on the way</h2>
<p>A service unit has been dispatched for request <strong>%s</strong>.</p>
<ul>
  <li>Truck: %s</li>
  <li>Driver: %s</li>
  <li>Issue: %s</li>
  <li>Details: %s</li>
</ul>`,
		req.ID, req.TruckID, req.Driver, req.IssueType, req.Description)
	return subject, body
}
