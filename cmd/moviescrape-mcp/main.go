// Command moviescrape-mcp exposes the moviescrape HTTP API as MCP tools over
// stdio.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// errorBody mirrors the API error response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func main() {
	apiURL := os.Getenv("MOVIEAPI_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("MOVIEAPI_API_KEY")

	if err := server.ServeStdio(newServer(apiURL, apiKey)); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func newServer(apiURL, apiKey string) *server.MCPServer {
	s := server.NewMCPServer(
		"moviescrape",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	googleTool := mcp.NewTool("google_search",
		mcp.WithDescription("Look up a movie or TV show on Google and return the knowledge panel's ratings (IMDb, Rotten Tomatoes, Google audience score), the IMDb id, the director and where to watch it with prices. Drives a headless browser; expect 10-60 seconds."),
		mcp.WithString("searchString",
			mcp.Required(),
			mcp.Description("Title to search for, optionally with the year, e.g. \"The Shawshank Redemption 1994\""),
		),
		mcp.WithString("region",
			mcp.Description("Two-letter region for watch options and prices, e.g. US, IN, GB"),
		),
	)
	s.AddTool(googleTool, handleGoogleSearch(apiURL, apiKey))

	ratingsTool := mcp.NewTool("fetch_ratings",
		mcp.WithDescription("Fetch IMDb rating and vote count and the Rotten Tomatoes critic/audience split (scores, counts, certified flags, consensus). Supply at least one source."),
		mcp.WithString("imdbId",
			mcp.Description("IMDb title id, e.g. tt0111161"),
		),
		mcp.WithString("rottenTomatoesUrl",
			mcp.Description("Rotten Tomatoes page URL or path, e.g. m/shawshank_redemption"),
		),
	)
	s.AddTool(ratingsTool, handleFetchRatings(apiURL, apiKey))

	return s
}

func handleGoogleSearch(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		search, err := request.RequireString("searchString")
		if err != nil || search == "" {
			return mcp.NewToolResultError("searchString is required"), nil
		}
		payload := map[string]string{"searchString": search}
		if region := request.GetString("region", ""); region != "" {
			payload["region"] = region
		}
		return callTool(ctx, client, apiURL, apiKey, "/api/v1/google/search", payload), nil
	}
}

func handleFetchRatings(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload := map[string]string{}
		if id := request.GetString("imdbId", ""); id != "" {
			payload["imdbId"] = id
		}
		if u := request.GetString("rottenTomatoesUrl", ""); u != "" {
			payload["rottenTomatoesUrl"] = u
		}
		if len(payload) == 0 {
			return mcp.NewToolResultError("at least one of imdbId or rottenTomatoesUrl is required"), nil
		}
		return callTool(ctx, client, apiURL, apiKey, "/api/v1/ratings", payload), nil
	}
}

// callTool posts payload and turns the response into a tool result: the
// pretty-printed body on success, the API's error text otherwise.
func callTool(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload any) *mcp.CallToolResult {
	status, body, err := apiPost(ctx, client, apiURL, apiKey, path, payload)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	if status != http.StatusOK {
		var e errorBody
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			msg := e.Error
			if e.Message != "" {
				msg += ": " + e.Message
			}
			return mcp.NewToolResultError(msg)
		}
		return mcp.NewToolResultError(fmt.Sprintf("API returned HTTP %d", status))
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		return mcp.NewToolResultText(string(body))
	}
	return mcp.NewToolResultText(pretty.String())
}

// apiPost sends a POST request to the API and returns the status and body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, b, nil
}
