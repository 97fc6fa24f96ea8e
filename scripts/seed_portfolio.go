// seed_portfolio.go — standalone script to seed a demo portfolio via the Foresight API.
//
// Creates properties with units and tenants, then backfills a year of rent
// payments and a handful of tenant messages so the scoring endpoints have
// history to chew on.
//
// Usage:
//
//	go run scripts/seed_portfolio.go -api http://localhost:8700 -key dev-key -properties 3
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"
)

type createdEntity struct {
	ID string `json:"id"`
}

var cities = []string{"Portland", "Seattle", "Denver", "Austin"}

var firstNames = []string{"Ana", "Ben", "Cora", "Dev", "Elena", "Felix", "Gia", "Hugo"}

var lastNames = []string{"Kim", "Ortiz", "Novak", "Reyes", "Singh", "Walsh"}

func main() {
	apiURL := flag.String("api", "http://localhost:8700", "Foresight API base URL")
	apiKey := flag.String("key", "", "X-API-Key header value")
	numProperties := flag.Int("properties", 2, "number of properties to create")
	unitsPer := flag.Int("units", 4, "units per property")
	months := flag.Int("months", 12, "months of payment history per tenant")
	seed := flag.Int64("seed", 42, "random seed")
	dryRun := flag.Bool("dry-run", false, "print the plan without posting")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if *dryRun {
		fmt.Printf("would create %d properties x %d units with %d months of history each\n",
			*numProperties, *unitsPer, *months)
		return
	}

	c := &seeder{
		api:    *apiURL,
		key:    *apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	for p := 0; p < *numProperties; p++ {
		city := cities[rng.Intn(len(cities))]
		year := 1990 + rng.Intn(30)
		property, err := c.post("/api/v1/properties", map[string]interface{}{
			"name":       fmt.Sprintf("Demo Property %d", p+1),
			"address":    fmt.Sprintf("%d Main St", 100+p),
			"city":       city,
			"year_built": year,
		})
		if err != nil {
			log.Fatalf("create property: %v", err)
		}
		log.Printf("property %s (%s, built %d)", property.ID, city, year)

		for u := 0; u < *unitsPer; u++ {
			occupied := rng.Float64() < 0.8
			unit, err := c.post("/api/v1/properties/"+property.ID+"/units", map[string]interface{}{
				"number":          fmt.Sprintf("%d0%d", p+1, u+1),
				"bedrooms":        1 + rng.Intn(3),
				"bathrooms":       1.0,
				"rent":            fmt.Sprintf("%d.00", 1400+rng.Intn(1200)),
				"condition_score": 0.5 + rng.Float64()*0.5,
				"occupied":        occupied,
			})
			if err != nil {
				log.Fatalf("create unit: %v", err)
			}
			if !occupied {
				continue
			}

			if err := c.seedTenant(rng, unit.ID, *months); err != nil {
				log.Fatalf("seed tenant: %v", err)
			}
		}

		// A little service history so the maintenance forecast has anchors.
		for _, component := range []string{"hvac", "water_heater"} {
			_, err := c.post("/api/v1/properties/"+property.ID+"/logs", map[string]interface{}{
				"component":   component,
				"description": "routine service",
				"serviced_at": time.Now().AddDate(0, -rng.Intn(36), 0).Format(time.RFC3339),
			})
			if err != nil {
				log.Fatalf("create log: %v", err)
			}
		}
	}

	log.Printf("done: %d created, %d skipped", c.created, c.skipped)
}

type seeder struct {
	api     string
	key     string
	client  *http.Client
	created int
	skipped int
}

func (c *seeder) seedTenant(rng *rand.Rand, unitID string, months int) error {
	moveIn := time.Now().AddDate(0, -(months + rng.Intn(24)), 0)
	tenant, err := c.post("/api/v1/tenants", map[string]interface{}{
		"unit_id":           unitID,
		"first_name":        firstNames[rng.Intn(len(firstNames))],
		"last_name":         lastNames[rng.Intn(len(lastNames))],
		"monthly_income":    fmt.Sprintf("%d.00", 3500+rng.Intn(4000)),
		"employment_type":   "full_time",
		"employment_months": 12 + rng.Intn(60),
		"move_in_date":      moveIn.Format(time.RFC3339),
		"references_count":  rng.Intn(4),
	})
	if err != nil {
		return err
	}

	// Mostly on-time payments with the occasional late one.
	for m := months; m > 0; m-- {
		due := time.Now().AddDate(0, -m, 0)
		lag := rng.Intn(10)
		status := "paid"
		if lag > 3 {
			status = "late"
		}
		paid := due.AddDate(0, 0, lag)
		_, err := c.post("/api/v1/tenants/"+tenant.ID+"/payments", map[string]interface{}{
			"amount":    fmt.Sprintf("%d.00", 1400+rng.Intn(1200)),
			"due_date":  due.Format(time.RFC3339),
			"paid_date": paid.Format(time.RFC3339),
			"status":    status,
		})
		if err != nil {
			return err
		}
	}

	bodies := []string{
		"Thanks for the quick fix, everything works great",
		"The heating is still not working, this is getting frustrating",
		"Could someone look at the kitchen faucet when convenient?",
	}
	for _, body := range bodies[:1+rng.Intn(len(bodies))] {
		_, err := c.post("/api/v1/tenants/"+tenant.ID+"/messages", map[string]interface{}{
			"direction": "inbound",
			"body":      body,
			"sent_at":   time.Now().AddDate(0, 0, -rng.Intn(180)).Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *seeder) post(path string, payload map[string]interface{}) (*createdEntity, error) {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", c.api+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		c.skipped++
		return nil, fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}
	c.created++

	var entity createdEntity
	if err := json.NewDecoder(resp.Body).Decode(&entity); err != nil {
		return nil, err
	}
	return &entity, nil
}
