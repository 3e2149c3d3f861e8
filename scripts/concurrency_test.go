//go:build ignore
// +build ignore

// Package main provides a manual concurrency stress test for the borrow API.
//
// Usage:
//
//	go run ./scripts/concurrency_test.go
//
// What it does:
//  1. Creates one book and N users through the HTTP API.
//  2. Fires N goroutines all attempting to borrow the same book simultaneously.
//  3. Verifies exactly one borrow succeeded and the rest were rejected with
//     a conflict (the book has at most one active borrower).
//
// Prerequisites:
//   - Server must be running (SERVER_ADDR, default http://localhost:8080).

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
)

const defaultServerAddr = "http://localhost:8080"

const userCount = 8

type entityResponse struct {
	ID string `json:"id"`
}

func postJSON(path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return http.Post(path, "application/json", bytes.NewReader(body))
}

func createEntity(serverAddr, path string, payload any) string {
	resp, err := postJSON(serverAddr+path, payload)
	if err != nil {
		log.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("POST %s: unexpected status %s", path, resp.Status)
	}
	var entity entityResponse
	if err := json.NewDecoder(resp.Body).Decode(&entity); err != nil {
		log.Fatalf("POST %s: decoding response: %v", path, err)
	}
	return entity.ID
}

func main() {
	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = defaultServerAddr
	}

	fmt.Printf("=== Borrow Concurrency Test ===\n")
	fmt.Printf("Server: %s\n\n", serverAddr)

	bookID := createEntity(serverAddr, "/books", map[string]any{"title": fmt.Sprintf("Stress Test Book %d", os.Getpid())})
	userIDs := make([]string, userCount)
	for i := range userIDs {
		userIDs[i] = createEntity(serverAddr, "/users", map[string]any{"name": fmt.Sprintf("Stress Tester %d-%d", os.Getpid(), i)})
	}
	fmt.Printf("Created book %s and %d users\n\n", bookID, userCount)

	var wg sync.WaitGroup
	statuses := make([]int, userCount)

	for i, userID := range userIDs {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			resp, err := postJSON(serverAddr+"/books/"+bookID+"/borrow", map[string]any{"user_id": userID, "loan_days": 1})
			if err != nil {
				log.Printf("user %s: borrow request failed: %v", userID, err)
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i, userID)
	}
	wg.Wait()

	var succeeded, conflicted int
	for i, status := range statuses {
		fmt.Printf("user %s -> %d\n", userIDs[i], status)
		switch status {
		case http.StatusNoContent:
			succeeded++
		case http.StatusConflict:
			conflicted++
		}
	}

	fmt.Printf("\nSucceeded: %d, Conflicted: %d\n", succeeded, conflicted)
	if succeeded != 1 {
		log.Fatalf("FAIL: expected exactly 1 successful borrow, got %d", succeeded)
	}
	if conflicted != userCount-1 {
		log.Fatalf("FAIL: expected %d conflicts, got %d", userCount-1, conflicted)
	}
	fmt.Println("PASS: the book was borrowed by exactly one user")
}
