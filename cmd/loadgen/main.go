package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sort"
	"time"
)

type RouteResp struct {
	Found    bool     `json:"found"`
	Path     []string `json:"path"`
	Minutes  float64  `json:"minutes"`
	CacheHit bool     `json:"cache_hit"`
}

type CacheStats struct {
	Gets      int `json:"gets"`
	Hits      int `json:"hits"`
	Puts      int `json:"puts"`
	Evictions int `json:"evictions"`
	Len       int `json:"len"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: loadgen <server_addr> [duration]")
	}

	server := os.Args[1]
	duration := 30 * time.Second
	if len(os.Args) > 2 {
		d, err := time.ParseDuration(os.Args[2])
		if err != nil {
			log.Fatal(err)
		}
		duration = d
	}

	client := &http.Client{Timeout: 10 * time.Second}

	airports, err := loadAirports(client, server)
	if err != nil {
		log.Fatal(err)
	}
	if len(airports) == 0 {
		log.Fatal("server has no airports loaded")
	}
	log.Printf("Loaded %d airports", len(airports))

	var totalReq, totalErr, totalHit, totalFound int64
	var latencies []time.Duration

	// clear cache before test to avoid cumulative stats
	if _, err := client.Get(server + "/debug/clear_cache"); err != nil {
		log.Fatalf("failed to clear cache: %v", err)
	}
	log.Println("Cache cleared")

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Running loadgen for %v…", duration)

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	for ctx.Err() == nil {
		from := airports[rnd.Intn(len(airports))]
		to := airports[rnd.Intn(len(airports))]

		q := url.Values{"from": {from}, "to": {to}}
		start := time.Now()
		resp, err := client.Get(server + "/route?" + q.Encode())
		lat := time.Since(start)

		totalReq++
		latencies = append(latencies, lat)

		if err != nil {
			totalErr++
			continue
		}

		var rr RouteResp
		json.NewDecoder(resp.Body).Decode(&rr)
		resp.Body.Close()

		if rr.CacheHit {
			totalHit++
		}
		if rr.Found {
			totalFound++
		}
	}

	stats := CacheStats{}
	if resp, err := client.Get(server + "/debug/cache_stats"); err == nil {
		json.NewDecoder(resp.Body).Decode(&stats)
		resp.Body.Close()
	}

	fmt.Println("\n========== LOADGEN SUMMARY ==========")
	fmt.Printf("Total Requests: %d\n", totalReq)
	fmt.Printf("Errors: %d\n", totalErr)
	if totalReq > 0 {
		fmt.Printf("Routes Found: %.1f%%\n", float64(totalFound)/float64(totalReq)*100)
		fmt.Printf("RouteCache Hit Rate: %.1f%%\n", float64(totalHit)/float64(totalReq)*100)
	}
	fmt.Printf("Cache: gets=%d hits=%d puts=%d evictions=%d len=%d\n",
		stats.Gets, stats.Hits, stats.Puts, stats.Evictions, stats.Len)

	if len(latencies) > 0 {
		p50, p95, p99 := computePercentiles(latencies)
		fmt.Printf("Avg Latency: %.3fms\n", computeAvg(latencies))
		fmt.Printf("P50/P95/P99: %.3fms / %.3fms / %.3fms\n", p50, p95, p99)
	}

	fmt.Println("=====================================")
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

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func computeAvg(l []time.Duration) float64 {
	var sum time.Duration
	for _, x := range l {
		sum += x
	}
	return ms(sum) / float64(len(l))
}

func computePercentiles(l []time.Duration) (p50, p95, p99 float64) {
	if len(l) == 0 {
		return 0, 0, 0
	}
	tmp := make([]time.Duration, len(l))
	copy(tmp, l)
	sort.Slice(tmp, func(i, j int) bool { return tmp[i] < tmp[j] })

	idx := func(p float64) int {
		i := int(float64(len(tmp)) * p)
		if i >= len(tmp) {
			i = len(tmp) - 1
		}
		return i
	}

	return ms(tmp[idx(0.50)]), ms(tmp[idx(0.95)]), ms(tmp[idx(0.99)])
}
