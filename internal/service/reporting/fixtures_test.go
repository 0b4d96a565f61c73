package reporting

import (
	"time"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

var testLoc = time.FixedZone("EET", 2*60*60)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 9, 30, 0, 0, testLoc)
}

func client(id, name string) *models.Client {
	return &models.Client{ID: id, Name: name}
}

func receiving(id string, c *models.Client, ts time.Time, records ...models.Record) models.Receiving {
	r := models.Receiving{ID: id, ClientID: c.ID, Client: c, Timestamp: ts}
	r.SetRecords(records)
	return r
}

// scenarioA is two receivings on one day: Ann 10kg@5, Bob 5kg@4 and 5kg@6.
func scenarioA() []models.Receiving {
	return []models.Receiving{
		receiving("r-ann", client("c-ann", "Ann"), day(1), models.Record{Weight: 10, Price: 5}),
		receiving("r-bob", client("c-bob", "Bob"), day(1),
			models.Record{Weight: 5, Price: 4},
			models.Record{Weight: 5, Price: 6}),
	}
}
