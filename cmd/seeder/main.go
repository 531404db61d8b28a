// Command seeder posts a handful of sample feedback items to a running
// pulse API, for demos and local testing.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

type feedbackItem struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

var feedbackItems = []feedbackItem{
	{Text: "Login page is extremely slow", Source: "Ticket #101"},
	{Text: "I love the new dark mode!", Source: "Twitter"},
	{Text: "App crashes when I upload a PNG", Source: "GitHub Issue"},
	{Text: "Billing history is missing", Source: "Email"},
	{Text: "Can we get an export to PDF feature?", Source: "Community Forum"},
}

func main() {
	apiURL := flag.String("api", "http://localhost:8787", "Base URL of the pulse API")
	delay := flag.Duration("delay", 0, "Pause between submissions")
	flag.Parse()

	client := &http.Client{Timeout: 60 * time.Second}

	slog.Info("starting seed", "api", *apiURL, "items", len(feedbackItems))

	var failures int
	for _, item := range feedbackItems {
		if err := ingest(client, *apiURL, item); err != nil {
			slog.Error("failed to ingest", "text", item.Text, "err", err)
			failures++
		} else {
			slog.Info("ingested", "text", item.Text)
		}
		time.Sleep(*delay)
	}

	if failures > 0 {
		slog.Error("seeding finished with failures", "failures", failures)
		os.Exit(1)
	}
	slog.Info("seeding complete")
}

func ingest(client *http.Client, apiURL string, item feedbackItem) error {
	body, err := json.Marshal(item)
	if err != nil {
		return err
	}

	resp, err := client.Post(apiURL+"/ingest", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("unexpected status %s: %s", resp.Status, apiErr.Error)
	}
	return nil
}
