package jobs

import (
	"log"
	"time"

	"github.com/notewala/gyan_notes/services"
)

// ProcessAutoReviews escalates fulfillments the requester ignored past the
// deadline and settles community reviews that timed out.
func ProcessAutoReviews() {
	log.Println("Running job: ProcessAutoReviews...")

	processed, err := services.RunAutoReviewDue(time.Now())
	if err != nil {
		log.Printf("Error processing auto reviews: %v", err)
		return
	}
	if processed == 0 {
		log.Println("No fulfillments due for auto review.")
		return
	}
	log.Printf("Auto-reviewed %d fulfillment(s).", processed)
}
