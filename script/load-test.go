package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// registerPayload is the body for POST /auth/register
type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authReply is the part of the register/login response we need
type authReply struct {
	Token string `json:"token"`
}

// accountReply is the part of the account creation response we need
type accountReply struct {
	UUID          string `json:"uuid"`
	AccountNumber string `json:"accountNumber"`
}

// transferPayload is the body for POST /transfers
type transferPayload struct {
	FromUUID string `json:"fromUuid"`
	ToUUID   string `json:"toUuid"`
	Amount   string `json:"amount"`
}

// payPayload is the body for POST /payments
type payPayload struct {
	FromUUID    string `json:"fromUuid"`
	ToUUID      string `json:"toUuid"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	TaxCategory string `json:"taxCategory"`
}

// adjustPayload is the body for POST /admin/adjustments
type adjustPayload struct {
	UserID      uint64 `json:"userId"`
	AccountUUID string `json:"accountUuid"`
	Amount      string `json:"amount"`
	Reason      string `json:"reason"`
}

// actor is one synthetic user with two funded accounts
type actor struct {
	UserID   uint64
	Token    string
	Accounts []string
}

// Scenario defines one kind of load against the ledger
type Scenario struct {
	Name   string
	Kind   string // transfer or payment
	Amount string
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	userCount := flag.Int("users", 3, "Number of synthetic users to register")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	adminToken := flag.String("admin-token", "", "Bearer token of an admin used to fund accounts")
	funding := flag.String("funding", "10000.000", "Starting balance per account")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	tpsTarget := flag.Float64("tps", 30, "TPS threshold for the final verdict")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	fmt.Printf("Registering %d synthetic users...\n", *userCount)
	actors, err := setupActors(client, *baseURL, *adminToken, *funding, *userCount)
	if err != nil {
		fmt.Println("Setup failed:", err)
		return
	}

	scenarios := []Scenario{
		{"Transfer Small", "transfer", "1.000"},
		{"Transfer Medium", "transfer", "10.000"},
		{"Transfer Large", "transfer", "50.000"},
		{"Payment Small", "payment", "2.500"},
		{"Payment Medium", "payment", "25.000"},
	}

	fmt.Printf("Load testing ledger across %d users\n", len(actors))
	fmt.Printf("Scenarios: %d different combinations\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour, // replaced by the first sample
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *baseURL, *delayMs, actors, scenarios, jobs, results, stats)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime

			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)
	printResults(stats, *tpsTarget)
}

// setupActors registers synthetic users, opens two accounts each and funds
// them through admin adjustments when an admin token is supplied
func setupActors(client *http.Client, baseURL, adminToken, funding string, count int) ([]actor, error) {
	suffix := rand.Intn(1000000)
	actors := make([]actor, 0, count)

	for i := 0; i < count; i++ {
		username := fmt.Sprintf("loadtest%d_%d", suffix, i)
		var auth authReply
		err := postJSON(client, baseURL+"/auth/register", "", registerPayload{
			Username: username,
			Email:    username + "@loadtest.local",
			Password: "loadtest-password",
		}, &auth)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", username, err)
		}

		a := actor{Token: auth.Token}
		for j := 0; j < 2; j++ {
			var account accountReply
			if err := postJSON(client, baseURL+"/accounts", auth.Token, struct{}{}, &account); err != nil {
				return nil, fmt.Errorf("create account for %s: %w", username, err)
			}
			a.Accounts = append(a.Accounts, account.UUID)
		}

		if adminToken != "" {
			userID, err := lookupUserID(client, baseURL, auth.Token)
			if err != nil {
				return nil, err
			}
			a.UserID = userID
			for _, accountUUID := range a.Accounts {
				err := postJSON(client, baseURL+"/admin/adjustments", adminToken, adjustPayload{
					UserID:      userID,
					AccountUUID: accountUUID,
					Amount:      funding,
					Reason:      "load test funding",
				}, nil)
				if err != nil {
					return nil, fmt.Errorf("fund account %s: %w", accountUUID, err)
				}
			}
		}

		actors = append(actors, a)
	}
	return actors, nil
}

// lookupUserID resolves the numeric id behind a bearer token. The adjust
// endpoint targets users by id, so we list the actor's accounts and read
// the holder from the first one.
func lookupUserID(client *http.Client, baseURL, token string) (uint64, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/accounts", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var accounts []struct {
		HolderID uint64 `json:"holderId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return 0, err
	}
	if len(accounts) == 0 {
		return 0, fmt.Errorf("no accounts for token")
	}
	return accounts[0].HolderID, nil
}

func worker(client *http.Client, baseURL string, delayMs int, actors []actor,
	scenarios []Scenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		a := actors[rand.Intn(len(actors))]
		scenario := scenarios[rand.Intn(len(scenarios))]

		stats.Lock.Lock()
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		var url string
		var payload any
		switch scenario.Kind {
		case "transfer":
			url = baseURL + "/transfers"
			payload = transferPayload{
				FromUUID: a.Accounts[0],
				ToUUID:   a.Accounts[1],
				Amount:   scenario.Amount,
			}
		default:
			// Pay a random other actor's first account
			other := actors[rand.Intn(len(actors))]
			url = baseURL + "/payments"
			payload = payPayload{
				FromUUID:    a.Accounts[0],
				ToUUID:      other.Accounts[0],
				Amount:      scenario.Amount,
				Description: "load test payment",
				TaxCategory: "1",
			}
		}

		startTime := time.Now()
		err := postJSON(client, url, a.Token, payload, nil)
		responseTime := time.Since(startTime)

		result := TestResult{ResponseTime: responseTime, Success: err == nil}
		if err != nil {
			result.Error = err
		}
		results <- result
	}
}

// postJSON sends an authenticated JSON POST and decodes the reply into out
func postJSON(client *http.Client, url, token string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func printResults(stats *TestStats, tpsTarget float64) {
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sortedTimes := make([]time.Duration, len(stats.ResponseTimes))
		copy(sortedTimes, stats.ResponseTimes)

		// Simple bubble sort (OK for small datasets)
		for i := 0; i < len(sortedTimes); i++ {
			for j := i + 1; j < len(sortedTimes); j++ {
				if sortedTimes[i] > sortedTimes[j] {
					sortedTimes[i], sortedTimes[j] = sortedTimes[j], sortedTimes[i]
				}
			}
		}

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:         %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS: %.2f (if all requests were successful)\n", theoreticalTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response: %v\n", avgResponseTime)
	fmt.Printf("Minimum Response: %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response: %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:     %v\n", p50)
	fmt.Printf("P90 Response:     %v\n", p90)
	fmt.Printf("P95 Response:     %v\n", p95)
	fmt.Printf("P99 Response:     %v\n", p99)

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	totalScenarios := 0
	for _, count := range stats.ScenarioStats {
		totalScenarios += count
	}
	for scenario, count := range stats.ScenarioStats {
		if count > 0 {
			fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count,
				float64(count)/float64(totalScenarios)*100)
		}
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}

	fmt.Println("\n================= CONCLUSION =================")
	if theoreticalTps >= tpsTarget {
		fmt.Printf("System can theoretically exceed %.0f TPS (%.2f TPS)\n", tpsTarget, theoreticalTps)
		if rawTps < tpsTarget {
			fmt.Println("But failures or delays are preventing full throughput")
		}
	} else {
		fmt.Printf("System does not meet the %.0f TPS threshold (%.2f TPS)\n", tpsTarget, theoreticalTps)
	}
	fmt.Println("================================================")
}
