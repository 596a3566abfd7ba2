package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"
)

type RouteResp struct {
	Found    bool    `json:"found"`
	Minutes  float64 `json:"minutes"`
	CacheHit bool    `json:"cache_hit"`
}

type Result struct {
	Clients    int
	AvgLatency float64
	Throughput float64
	HitRate    float64
}

func main() {
	maxClients := flag.Int("max-clients", 64, "largest client count to test")
	step := flag.Int("step", 4, "client count increment")
	dur := flag.Duration("duration", 10*time.Second, "duration per client count")
	out := flag.String("out", "results.csv", "CSV results file")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("usage: loadgen_closed [flags] <server_addr>")
	}
	if *step < 1 || *maxClients < 1 {
		log.Fatalf("-step and -max-clients must be positive, got %d and %d", *step, *maxClients)
	}
	server := flag.Arg(0)

	client := &http.Client{Timeout: 5 * time.Second}

	airports, err := loadAirports(client, server)
	if err != nil {
		log.Fatal(err)
	}
	if len(airports) == 0 {
		log.Fatal("server has no airports loaded")
	}

	// warm the server (so cold-start effects don't matter)
	client.Get(server + "/debug/clear_cache")
	client.Get(routeURL(server, airports[0], airports[len(airports)-1]))

	var results []Result

	for _, n := range clientCounts(*step, *maxClients) {
		fmt.Printf("\n== Running test with %d clients ==\n", n)
		results = append(results, runClosedLoop(server, airports, n, *dur))
	}

	fmt.Println("\n========== CLOSED-LOOP RESULTS (CSV) ==========")
	fmt.Println("clients,avg_latency_ms,throughput_rps,cache_hit_rate")
	for _, r := range results {
		fmt.Printf("%d,%.4f,%.2f,%.3f\n", r.Clients, r.AvgLatency, r.Throughput, r.HitRate)
	}
	fmt.Println("===============================================")

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	fmt.Fprintf(f, "clients,avg_latency_ms,throughput_rps,cache_hit_rate\n")
	for _, r := range results {
		fmt.Fprintf(f, "%d,%.4f,%.2f,%.3f\n", r.Clients, r.AvgLatency, r.Throughput, r.HitRate)
	}
}

// clientCounts lists step, 2*step, ... up to limit. It is empty for a
// non-positive step.
func clientCounts(step, limit int) []int {
	if step < 1 {
		return nil
	}
	var out []int
	for n := step; n <= limit; n += step {
		out = append(out, n)
	}
	return out
}

func routeURL(server, from, to string) string {
	q := url.Values{"from": {from}, "to": {to}}
	return server + "/route?" + q.Encode()
}

func loadAirports(client *http.Client, server string) ([]string, error) {
	resp, err := client.Get(server + "/airports")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /airports: %s", resp.Status)
	}

	var airports []string
	if err := json.NewDecoder(resp.Body).Decode(&airports); err != nil {
		return nil, err
	}
	return airports, nil
}

// --------------------------------------------
// CLOSED LOOP TEST FOR A FIXED WORKER COUNT
// --------------------------------------------
func runClosedLoop(server string, airports []string, clients int, dur time.Duration) Result {
	transport := &http.Transport{
		MaxIdleConns:        500,
		MaxIdleConnsPerHost: 500,
		MaxConnsPerHost:     2000,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  true,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   5 * time.Second,
	}

	ctx, cancel := context.WithTimeout(context.Background(), dur)
	defer cancel()

	var wg sync.WaitGroup

	var mu sync.Mutex
	var totalLatency time.Duration
	var totalReq, totalHit int64

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))

			for ctx.Err() == nil {
				from := airports[rnd.Intn(len(airports))]
				to := airports[rnd.Intn(len(airports))]

				start := time.Now()
				resp, err := client.Get(routeURL(server, from, to))
				lat := time.Since(start)

				if err != nil {
					continue
				}

				var rr RouteResp
				json.NewDecoder(resp.Body).Decode(&rr)
				resp.Body.Close()

				mu.Lock()
				totalLatency += lat
				totalReq++
				if rr.CacheHit {
					totalHit++
				}
				mu.Unlock()
			}
		}(time.Now().UnixNano() + int64(i))
	}

	wg.Wait()

	if totalReq == 0 {
		return Result{Clients: clients}
	}

	return Result{
		Clients:    clients,
		AvgLatency: float64(totalLatency) / float64(time.Millisecond) / float64(totalReq),
		Throughput: float64(totalReq) / dur.Seconds(),
		HitRate:    float64(totalHit) / float64(totalReq),
	}
}
