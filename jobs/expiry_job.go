package jobs

import (
	"log"
	"time"

	"github.com/notewala/gyan_notes/services"
)

// ExpireStaleRequests sweeps open requests past their deadline and refunds
// their escrow.
func ExpireStaleRequests() {
	log.Println("Running job: ExpireStaleRequests...")

	expired, err := services.ExpireOpenRequestsDue(time.Now())
	if err != nil {
		log.Printf("Error expiring stale requests: %v", err)
		return
	}
	if expired == 0 {
		log.Println("No stale requests found.")
		return
	}
	log.Printf("Expired %d request(s) and refunded their escrow.", expired)
}
